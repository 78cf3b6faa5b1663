// Package history provides storage interfaces and implementations for
// the deployment history recorded by the DevAssist workflow helpers.
package history

import (
	"time"
)

// Deployment is a single recorded deployment.
type Deployment struct {
	// ID is the stable short identifier of the record.
	ID string

	// Project is the project name that was deployed.
	Project string

	// URL is the deployment URL reported by the deploy CLI.
	URL string

	// Timestamp is when the deployment completed.
	Timestamp time.Time
}

// Store defines the interface for recording and listing deployments.
type Store interface {
	// Initialize initializes the store with configuration options.
	Initialize(dbPath string) error

	// Close closes the store and releases any resources.
	Close() error

	// Record stores one deployment.
	Record(dep Deployment) error

	// Recent returns up to limit deployments, newest first.
	Recent(limit int) ([]Deployment, error)

	// Clear removes all recorded deployments and reports how many were removed.
	Clear() (int, error)
}
