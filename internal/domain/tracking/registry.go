package tracking

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed modes.yaml
var defaultCatalog []byte

// Flow is one catalogued tracking mode.
type Flow struct {
	Mode        Mode
	Label       string
	Description string
	Steps       []Kind
	Labels      map[Kind]string
}

// Registry is the read-only catalog of tracking modes. It is safe for
// concurrent use once built.
type Registry struct {
	flows        map[Mode]Flow
	order        []Mode
	legacyLabels map[Kind]string
}

type catalogFile struct {
	Version      int             `yaml:"version"`
	LegacyLabels map[Kind]string `yaml:"legacy_labels"`
	Modes        []catalogMode   `yaml:"modes"`
}

type catalogMode struct {
	Mode        Mode            `yaml:"mode"`
	Label       string          `yaml:"label"`
	Description string          `yaml:"description"`
	Steps       []Kind          `yaml:"steps"`
	Labels      map[Kind]string `yaml:"labels"`
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded catalog.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(defaultCatalog)
		if err != nil {
			panic(fmt.Sprintf("tracking: embedded catalog: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Parse builds a registry from a YAML catalog.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(file.Modes) == 0 {
		return nil, fmt.Errorf("%w: no modes defined", ErrInvalidCatalog)
	}

	r := &Registry{
		flows:        make(map[Mode]Flow, len(file.Modes)),
		order:        make([]Mode, 0, len(file.Modes)),
		legacyLabels: make(map[Kind]string, len(file.LegacyLabels)),
	}

	for kind, label := range file.LegacyLabels {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: unknown legacy kind %q", ErrInvalidCatalog, kind)
		}
		r.legacyLabels[kind] = label
	}

	for _, m := range file.Modes {
		if m.Mode == "" {
			return nil, fmt.Errorf("%w: mode without a name", ErrInvalidCatalog)
		}
		if _, exists := r.flows[m.Mode]; exists {
			return nil, fmt.Errorf("%w: duplicate mode %q", ErrInvalidCatalog, m.Mode)
		}
		if len(m.Steps) == 0 {
			return nil, fmt.Errorf("%w: mode %q has no steps", ErrInvalidCatalog, m.Mode)
		}

		steps := make([]Kind, len(m.Steps))
		labels := make(map[Kind]string, len(m.Labels))
		for i, kind := range m.Steps {
			if !kind.Valid() {
				return nil, fmt.Errorf("%w: mode %q step %d: unknown kind %q", ErrInvalidCatalog, m.Mode, i, kind)
			}
			label, ok := m.Labels[kind]
			if !ok || label == "" {
				return nil, fmt.Errorf("%w: mode %q has no label for %q", ErrInvalidCatalog, m.Mode, kind)
			}
			steps[i] = kind
			labels[kind] = label
		}

		r.flows[m.Mode] = Flow{
			Mode:        m.Mode,
			Label:       m.Label,
			Description: m.Description,
			Steps:       steps,
			Labels:      labels,
		}
		r.order = append(r.order, m.Mode)
	}

	return r, nil
}

// Lookup returns a copy of the flow registered for mode.
func (r *Registry) Lookup(mode Mode) (Flow, error) {
	f, ok := r.flows[mode]
	if !ok {
		return Flow{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return copyFlow(f), nil
}

// Flow returns the ordered punch kinds of mode.
func (r *Registry) Flow(mode Mode) ([]Kind, error) {
	f, ok := r.flows[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	steps := make([]Kind, len(f.Steps))
	copy(steps, f.Steps)
	return steps, nil
}

// Label returns the display label of kind under mode. Legacy labels are
// checked first, so legacy kinds resolve even for unknown modes. A kind that
// the mode does not label falls back to its raw name.
func (r *Registry) Label(mode Mode, kind Kind) (string, error) {
	if label, ok := r.legacyLabels[kind]; ok {
		return label, nil
	}
	f, ok := r.flows[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if label, ok := f.Labels[kind]; ok {
		return label, nil
	}
	return string(kind), nil
}

// NextExpected resolves the next punch for a project day of mode, given the
// kinds already recorded that day in order.
func (r *Registry) NextExpected(mode Mode, recorded []Kind) (Next, error) {
	f, ok := r.flows[mode]
	if !ok {
		return Next{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return Resolve(f.Steps, len(recorded)), nil
}

// Has reports whether mode is catalogued.
func (r *Registry) Has(mode Mode) bool {
	_, ok := r.flows[mode]
	return ok
}

// Modes returns every catalogued flow in catalog order.
func (r *Registry) Modes() []Flow {
	flows := make([]Flow, 0, len(r.order))
	for _, mode := range r.order {
		flows = append(flows, copyFlow(r.flows[mode]))
	}
	return flows
}

func copyFlow(f Flow) Flow {
	steps := make([]Kind, len(f.Steps))
	copy(steps, f.Steps)
	labels := make(map[Kind]string, len(f.Labels))
	for k, v := range f.Labels {
		labels[k] = v
	}
	f.Steps = steps
	f.Labels = labels
	return f
}
