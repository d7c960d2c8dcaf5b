package rules

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the scoring rulesets compiled into the binary: per-platform
// copy limits and compliance phrase lists. It is loaded once at startup and
// read-mostly afterwards.
type Registry struct {
	mu         sync.RWMutex
	platforms  map[string]PlatformLimits
	categories []ComplianceCategory
}

// NewRegistry loads the embedded ruleset files.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		platforms: make(map[string]PlatformLimits),
	}
	if err := r.loadPlatforms(); err != nil {
		return nil, fmt.Errorf("failed to load platform rules: %w", err)
	}
	if err := r.loadCompliance(); err != nil {
		return nil, fmt.Errorf("failed to load compliance rules: %w", err)
	}
	return r, nil
}

func (r *Registry) loadPlatforms() error {
	data, err := configFiles.ReadFile("config/platforms.yaml")
	if err != nil {
		return fmt.Errorf("failed to read platforms.yaml: %w", err)
	}

	var file platformsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal platforms.yaml: %w", err)
	}
	if len(file.Platforms) == 0 {
		return fmt.Errorf("platforms.yaml defines no platforms")
	}

	r.mu.Lock()
	r.platforms = file.Platforms
	r.mu.Unlock()
	return nil
}

func (r *Registry) loadCompliance() error {
	data, err := configFiles.ReadFile("config/compliance.yaml")
	if err != nil {
		return fmt.Errorf("failed to read compliance.yaml: %w", err)
	}

	var file complianceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal compliance.yaml: %w", err)
	}
	if len(file.Categories) == 0 {
		return fmt.Errorf("compliance.yaml defines no categories")
	}

	r.mu.Lock()
	r.categories = file.Categories
	r.mu.Unlock()
	return nil
}

// PlatformLimits returns the limits for a platform identifier.
func (r *Registry) PlatformLimits(platform string) (*PlatformLimits, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limits, ok := r.platforms[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
	return &limits, nil
}

// ComplianceCategories returns every category that applies to the given
// industry (file order preserved). An empty industry matches only the
// unrestricted categories.
func (r *Registry) ComplianceCategories(industry string) []ComplianceCategory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []ComplianceCategory
	for _, cat := range r.categories {
		if len(cat.Industries) == 0 {
			matched = append(matched, cat)
			continue
		}
		for _, ind := range cat.Industries {
			if ind == industry {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched
}

// CategoryCount returns the number of loaded compliance categories. Used by
// health probes to confirm the ruleset is present.
func (r *Registry) CategoryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.categories)
}

// PlatformCount returns the number of loaded platform rulesets.
func (r *Registry) PlatformCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.platforms)
}
