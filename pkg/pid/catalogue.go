package pid

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var rawCatalogue []byte

// Alternative overrides a numeric result with a textual meaning.
type Alternative struct {
	Raw     float64
	Meaning string
}

// Descriptor describes one typed value extracted from a response. Name
// is optional and only set when a command yields multiple named values
// (or when a bit of a supported-parameters bitmask names another
// catalogue entry).
type Descriptor struct {
	Name         string
	Type         Type
	Formula      Formula
	Unit         string
	Alternatives []Alternative
}

// Definition is one named parameter: the command that requests it and
// the ordered descriptors for the values that come back.
type Definition struct {
	Name         string
	Command      string
	Availability Availability
	Results      []Descriptor
}

// Catalogue holds the parameter definitions for a session. Definitions
// are stored behind stable internal ids with a separate name index, so
// the discovery renames never alias a live definition under two names.
type Catalogue struct {
	defs  map[int]*Definition
	names map[string]int
	next  int
}

type rawDescriptor struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Formula      string `yaml:"formula"`
	Unit         string `yaml:"unit"`
	Alternatives []struct {
		Raw     float64 `yaml:"raw"`
		Meaning string  `yaml:"meaning"`
	} `yaml:"alternatives"`
}

type rawDefinition struct {
	Name    string          `yaml:"name"`
	Command string          `yaml:"command"`
	Results []rawDescriptor `yaml:"results"`
}

type rawFile struct {
	Parameters []rawDefinition `yaml:"parameters"`
}

// Load builds a fresh catalogue from the embedded definition data.
// Type tags and formulas are parsed here, once, so lookups hand out
// ready-to-run transforms.
func Load() (*Catalogue, error) {
	var file rawFile
	if err := yaml.Unmarshal(rawCatalogue, &file); err != nil {
		return nil, fmt.Errorf("catalogue data: %w", err)
	}
	cat := &Catalogue{
		defs:  make(map[int]*Definition, len(file.Parameters)),
		names: make(map[string]int, len(file.Parameters)),
	}
	for _, raw := range file.Parameters {
		def := &Definition{
			Name:    raw.Name,
			Command: raw.Command,
		}
		for _, rd := range raw.Results {
			typ, err := ParseType(rd.Type)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", raw.Name, err)
			}
			formula, err := ParseFormula(rd.Formula)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", raw.Name, err)
			}
			desc := Descriptor{
				Name:    rd.Name,
				Type:    typ,
				Formula: formula,
				Unit:    rd.Unit,
			}
			for _, alt := range rd.Alternatives {
				desc.Alternatives = append(desc.Alternatives, Alternative{Raw: alt.Raw, Meaning: alt.Meaning})
			}
			def.Results = append(def.Results, desc)
		}
		if err := cat.Add(def); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// Add registers a definition under its name.
func (c *Catalogue) Add(def *Definition) error {
	if _, exists := c.names[def.Name]; exists {
		return fmt.Errorf("duplicate parameter %q", def.Name)
	}
	c.defs[c.next] = def
	c.names[def.Name] = c.next
	c.next++
	return nil
}

// Lookup returns the definition for name, or nil.
func (c *Catalogue) Lookup(name string) *Definition {
	id, ok := c.names[name]
	if !ok {
		return nil
	}
	return c.defs[id]
}

// SetAvailability records the discovered support state for name. It
// reports whether the name was present.
func (c *Catalogue) SetAvailability(name string, a Availability) bool {
	def := c.Lookup(name)
	if def == nil {
		return false
	}
	def.Availability = a
	return true
}

// Rename relocates a definition to a new canonical name and removes
// the old key. The definition keeps its id, availability and results.
// It is a no-op when the old name is absent or the new name is taken.
func (c *Catalogue) Rename(old, canonical string) bool {
	id, ok := c.names[old]
	if !ok {
		return false
	}
	if _, taken := c.names[canonical]; taken {
		return false
	}
	delete(c.names, old)
	c.names[canonical] = id
	c.defs[id].Name = canonical
	return true
}

// Names returns all parameter names in sorted order.
func (c *Catalogue) Names() []string {
	out := make([]string, 0, len(c.names))
	for name := range c.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of definitions.
func (c *Catalogue) Len() int { return len(c.defs) }
