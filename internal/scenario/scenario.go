package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

// Scenario defines the initial conditions of one wargame: force
// dispositions, objectives, and terrain annotations.
type Scenario struct {
	Name        string                    `yaml:"name" json:"name"`
	Description string                    `yaml:"description" json:"description"`
	Region      string                    `yaml:"region,omitempty" json:"region,omitempty"`
	BlueForce   Force                     `yaml:"blue_force" json:"blue_force"`
	RedForce    Force                     `yaml:"red_force" json:"red_force"`
	Objectives  []Objective               `yaml:"objectives" json:"objectives"`
	Terrain     map[string]TerrainFeature `yaml:"terrain,omitempty" json:"terrain,omitempty"`
	Bounds      Bounds                    `yaml:"bounds,omitempty" json:"bounds,omitempty"`
}

// Load reads a YAML scenario definition from disk, validating it against
// the CUE schema first when schemaPath is non-empty.
func Load(path, schemaPath string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	if schemaPath != "" {
		if err := validateWithCue(b, schemaPath); err != nil {
			return nil, err
		}
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	s.normalize()
	return &s, nil
}

// Save writes the scenario as YAML.
func (s *Scenario) Save(path string) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

func validateWithCue(yamlBytes []byte, cueFile string) error {
	ctx := cuecontext.New()

	file, err := cueyaml.Extract("scenario.yaml", yamlBytes)
	if err != nil {
		return fmt.Errorf("parse scenario YAML: %w", err)
	}
	configVal := ctx.BuildFile(file)

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	final := configVal.Unify(schemaVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}
	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func (s *Scenario) normalize() {
	s.BlueForce.Side = SideBlue
	s.RedForce.Side = SideRed
	for i := range s.BlueForce.Units {
		s.BlueForce.Units[i].Side = SideBlue
		if s.BlueForce.Units[i].Status == "" {
			s.BlueForce.Units[i].Status = StatusReady
		}
	}
	for i := range s.RedForce.Units {
		s.RedForce.Units[i].Side = SideRed
		if s.RedForce.Units[i].Status == "" {
			s.RedForce.Units[i].Status = StatusReady
		}
	}
	for i := range s.Objectives {
		if s.Objectives[i].Owner == "" {
			s.Objectives[i].Owner = OwnerNeutral
		}
	}
}

// Summary returns a human-readable roster overview.
func (s *Scenario) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", s.Name)
	fmt.Fprintf(&b, "Description: %s\n\n", s.Description)

	for _, f := range []*Force{&s.BlueForce, &s.RedForce} {
		fmt.Fprintf(&b, "%s: %d units\n", f.Name, len(f.Units))
		for _, d := range []Domain{DomainAir, DomainNaval, DomainGround, DomainCyber, DomainSpace} {
			if n := len(f.UnitsByDomain(d)); n > 0 {
				fmt.Fprintf(&b, "  - %s: %d\n", d, n)
			}
		}
	}

	fmt.Fprintf(&b, "\nObjectives: %d\n", len(s.Objectives))
	for _, obj := range s.Objectives {
		fmt.Fprintf(&b, "  - %s (%s): %s\n", obj.Name, obj.Owner, obj.Description)
	}
	return b.String()
}

// Registry is an immutable scenario lookup keyed by identifier. Built once
// at startup and passed by reference to whoever needs scenario data.
type Registry struct {
	scenarios map[string]*Scenario
}

// NewRegistry builds the registry with all built-in scenarios.
func NewRegistry() *Registry {
	return &Registry{scenarios: map[string]*Scenario{
		"taiwan_strait": TaiwanStrait(),
	}}
}

// Get returns the scenario for id, or an error naming the available ids.
func (r *Registry) Get(id string) (*Scenario, error) {
	s, ok := r.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q, available: %s", id, strings.Join(r.IDs(), ", "))
	}
	return s, nil
}

// IDs lists registered scenario identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.scenarios))
	for id := range r.scenarios {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
