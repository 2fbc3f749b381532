package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

// Config is a loaded and validated difficulty configuration.
type Config struct {
	Generator core.GenParams
	Presets   *Presets
	Source    string // where the configuration was read from
}

// Presets is an ordered set of named difficulties.
type Presets struct {
	list        []core.Difficulty
	byName      map[string]int
	defaultName string
}

// NewPresets validates every preset and indexes them by name.
func NewPresets(f File) (*Presets, error) {
	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("config: no presets defined")
	}

	p := &Presets{byName: make(map[string]int, len(f.Presets))}
	for _, pc := range f.Presets {
		d, err := pc.Difficulty()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		key := strings.ToLower(d.Name)
		if _, dup := p.byName[key]; dup {
			return nil, fmt.Errorf("config: duplicate preset %q", d.Name)
		}
		p.byName[key] = len(p.list)
		p.list = append(p.list, d)
	}

	p.defaultName = p.list[0].Name
	if f.Default != "" {
		if _, ok := p.byName[strings.ToLower(f.Default)]; !ok {
			return nil, fmt.Errorf("config: default preset %q not defined", f.Default)
		}
		p.defaultName = f.Default
	}
	return p, nil
}

// Get returns the preset with the given name (case-insensitive).
func (p *Presets) Get(name string) (core.Difficulty, error) {
	i, ok := p.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return core.Difficulty{}, fmt.Errorf("unknown difficulty %q (available: %s)", name, strings.Join(p.Names(), ", "))
	}
	return p.list[i], nil
}

// Default returns the preset named by the config's default field.
func (p *Presets) Default() core.Difficulty {
	d, err := p.Get(p.defaultName)
	if err != nil {
		return p.list[0]
	}
	return d
}

// Resolve returns the named preset, or the default when name is empty.
func (p *Presets) Resolve(name string) (core.Difficulty, error) {
	if name == "" {
		return p.Default(), nil
	}
	return p.Get(name)
}

// Names returns preset names in file order.
func (p *Presets) Names() []string {
	names := make([]string, len(p.list))
	for i, d := range p.list {
		names[i] = d.Name
	}
	return names
}

// All returns a copy of the presets in file order.
func (p *Presets) All() []core.Difficulty {
	return append([]core.Difficulty(nil), p.list...)
}
