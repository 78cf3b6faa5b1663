package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/saasdev/devassist/internal/config"
)

// Manual smoke harness for the configuration loader: writes a config file,
// loads it back, and checks that environment overrides win over file values.
// Run it by hand; it is not part of the test suite.
func main() {
	fmt.Println("=== Starting Config Smoke Test ===")

	dir, err := os.MkdirTemp("", "devassist-config-smoke")
	if err != nil {
		fmt.Printf("Error creating temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, config.DefaultConfigFilename)

	// Save a config with non-default values
	cfg := config.NewConfig()
	cfg.Server.Name = "devassist-smoke"
	cfg.History.SQLitePath = filepath.Join(dir, "smoke-history.db")
	if err := cfg.SaveToFile(configPath); err != nil {
		fmt.Printf("Error saving config: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("=== Config Saved ===")

	// Load it back
	loaded, err := config.LoadConfigWithPath(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Config Loaded Successfully ===")
	fmt.Printf("Server Name: %s\n", loaded.Server.Name)
	fmt.Printf("SQLite Path: %s\n", loaded.History.SQLitePath)
	fmt.Printf("Log Level: %s\n", loaded.Logging.Level)

	fmt.Println("\n=== Testing Environment Override ===")

	// Environment variables win over file values
	os.Setenv("DEVASSIST_SERVER_NAME", "devassist-from-env")
	defer os.Unsetenv("DEVASSIST_SERVER_NAME")

	overridden, err := config.LoadConfigWithPath(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Server Name: %s\n", overridden.Server.Name)
	if overridden.Server.Name != "devassist-from-env" {
		fmt.Println("FAIL: environment override was not applied")
		os.Exit(1)
	}

	fmt.Println("\n=== Test Complete ===")
}
