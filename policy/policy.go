// Package policy loads the per-target benchmark filter and environment table.
//
// Which benchmarks are worth running on which target changes with every
// hardware generation, so the pairing lives in a YAML file rather than in code.
package policy

import (
	"fmt"
	"os"
	"strings"

	"github.com/drbench/drbench/model"
	"gopkg.in/yaml.v3"
)

// Policy maps target tokens (e.g. "mhp_sycl_gpu") to their settings.
type Policy struct {
	Targets map[string]TargetPolicy `yaml:"targets"`
}

// TargetPolicy holds the settings applied to every run of one target.
type TargetPolicy struct {
	Filters []string          `yaml:"filters"`
	Env     map[string]string `yaml:"env"`
}

// LoadFromFile reads and validates a policy file.
func LoadFromFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(data)
}

// Parse decodes policy YAML and validates it.
func Parse(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy YAML: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func validate(p *Policy) error {
	if len(p.Targets) == 0 {
		return fmt.Errorf("policy has no targets")
	}
	for name, tp := range p.Targets {
		if _, err := model.ParseTarget(name); err != nil {
			return fmt.Errorf("policy: %w", err)
		}
		for i, f := range tp.Filters {
			if strings.TrimSpace(f) == "" {
				return fmt.Errorf("target %q has an empty filter at index %d", name, i)
			}
		}
		for key := range tp.Env {
			if key == "" || strings.Contains(key, "=") {
				return fmt.Errorf("target %q has invalid env name %q", name, key)
			}
		}
	}
	return nil
}

// FiltersFor returns the filters configured for t, if any.
func (p *Policy) FiltersFor(t model.Target) ([]string, bool) {
	if p == nil {
		return nil, false
	}
	tp, ok := p.Targets[t.Name()]
	if !ok || len(tp.Filters) == 0 {
		return nil, false
	}
	return tp.Filters, true
}

// EnvFor returns the environment overrides configured for t.
func (p *Policy) EnvFor(t model.Target) map[string]string {
	if p == nil {
		return nil
	}
	return p.Targets[t.Name()].Env
}
