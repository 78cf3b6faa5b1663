package toolchain

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/saasdev/devassist/internal/telemetry"
)

// ScanReport summarizes a project directory: how many files and
// directories it holds and which technologies its dependency manifest
// declares.
type ScanReport struct {
	Files        int      `json:"files"`
	Dirs         int      `json:"dirs"`
	Technologies []string `json:"technologies"`
}

// ProjectScanner inspects a project directory.
type ProjectScanner interface {
	Scan(dir string) (*ScanReport, error)
}

// skipDirs are directory names never descended into during a scan.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// technologyByDependency maps dependency-manifest package names to the
// technology they indicate. Detection is this lookup table and nothing
// more; there are no deeper heuristics.
var technologyByDependency = map[string]string{
	"react":      "React",
	"react-dom":  "React",
	"next":       "Next.js",
	"vue":        "Vue",
	"svelte":     "Svelte",
	"express":    "Express",
	"fastify":    "Fastify",
	"typescript": "TypeScript",
	"jest":       "Jest",
	"vitest":     "Vitest",
	"mocha":      "Mocha",
	"prisma":     "Prisma",
	"mongoose":   "MongoDB",
	"pg":         "PostgreSQL",
	"redis":      "Redis",
	"stripe":     "Stripe",
	"tailwindcss": "Tailwind CSS",
}

// FSScanner is the filesystem-backed ProjectScanner.
type FSScanner struct {
	metrics *telemetry.MetricsCollector
}

// NewFSScanner creates a new FSScanner.
func NewFSScanner(metrics *telemetry.MetricsCollector) *FSScanner {
	return &FSScanner{metrics: metrics}
}

// Scan walks the directory, counting files and directories and detecting
// technologies from package.json when present.
func (s *FSScanner) Scan(dir string) (*ScanReport, error) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(telemetry.MetricProjectsScans, 1)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	report := &ScanReport{}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			report.Dirs++
			return nil
		}
		report.Files++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project directory: %w", err)
	}

	technologies, err := detectTechnologies(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, err
	}
	report.Technologies = technologies

	return report, nil
}

// detectTechnologies reads a dependency manifest and maps its declared
// dependencies through the technology lookup table. A missing manifest is
// not an error; it just yields no technologies.
func detectTechnologies(manifestPath string) ([]string, error) {
	data, err := os.ReadFile(manifestPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency manifest: %w", err)
	}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse dependency manifest: %w", err)
	}

	seen := make(map[string]bool)
	for name := range manifest.Dependencies {
		if tech, ok := technologyByDependency[name]; ok {
			seen[tech] = true
		}
	}
	for name := range manifest.DevDependencies {
		if tech, ok := technologyByDependency[name]; ok {
			seen[tech] = true
		}
	}

	technologies := make([]string, 0, len(seen))
	for tech := range seen {
		technologies = append(technologies, tech)
	}
	sort.Strings(technologies)
	return technologies, nil
}
