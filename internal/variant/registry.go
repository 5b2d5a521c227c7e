package variant

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed variants.yaml
var builtinVariants []byte

var (
	builtinOnce sync.Once
	builtinFile *File
	builtinErr  error
)

// Registry holds the variants known to this process, keyed by name.
type Registry struct {
	variants map[string]*Variant
}

// Builtin returns a fresh registry containing the embedded variants.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		var f File
		if err := yaml.Unmarshal(builtinVariants, &f); err != nil {
			builtinErr = fmt.Errorf("parsing built-in variants: %w", err)
			return
		}
		builtinFile = &f
	})
	if builtinErr != nil {
		return nil, builtinErr
	}

	r := &Registry{variants: make(map[string]*Variant)}
	r.Add(builtinFile)
	return r, nil
}

// Open returns the built-in registry overlaid with the variants file at path.
// An empty path yields the built-ins only.
func Open(path string) (*Registry, error) {
	r, err := Builtin()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return r, nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	r.Add(f)
	return r, nil
}

// Add registers every variant in f, replacing existing entries of the same
// name. Variants are copied; later changes to f do not affect the registry.
func (r *Registry) Add(f *File) {
	for i := range f.Variants {
		v := f.Variants[i]
		v.AllowedKeys = append([]string(nil), v.AllowedKeys...)
		v.DescriptionHints = append([]string(nil), v.DescriptionHints...)
		v.normalize()
		r.variants[v.Name] = &v
	}
}

// Lookup returns the named variant.
func (r *Registry) Lookup(name string) (*Variant, error) {
	v, ok := r.variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (available: %v)", name, r.Names())
	}
	return v, nil
}

// Names returns all registered variant names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered variants sorted by name.
func (r *Registry) All() []*Variant {
	names := r.Names()
	out := make([]*Variant, 0, len(names))
	for _, name := range names {
		out = append(out, r.variants[name])
	}
	return out
}
