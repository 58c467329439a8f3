package integrators

import (
	"github.com/san-kum/pendsim/internal/dynamo"
)

// All is the token that Resolve expands to the three Euler schemes.
const All = "all"

// Euler lists the schemes under study, in display order.
var Euler = []string{"explicit", "implicit", "symplectic"}

type Registry struct {
	schemes map[string]func() Scheme
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{schemes: make(map[string]func() Scheme)}

	r.Register("explicit", func() Scheme { return NewExplicitEuler() })
	r.Register("implicit", func() Scheme { return NewImplicitEuler() })
	r.Register("symplectic", func() Scheme { return NewSymplecticEuler() })
	r.Register("analytical", func() Scheme { return NewAnalytical() })
	r.Register("rk4", func() Scheme {
		return NewStepped("rk4", func() dynamo.Integrator { return NewRK4() })
	})
	r.Register("verlet", func() Scheme {
		return NewStepped("verlet", func() dynamo.Integrator { return NewVerlet() })
	})

	return r
}

// Register adds or replaces a scheme constructor.
func (r *Registry) Register(name string, fn func() Scheme) {
	if _, ok := r.schemes[name]; !ok {
		r.order = append(r.order, name)
	}
	r.schemes[name] = fn
}

func (r *Registry) Get(name string) (Scheme, error) {
	fn, ok := r.schemes[name]
	if !ok {
		return nil, dynamo.InvalidArgument("registry", "scheme", name, "unknown scheme")
	}
	return fn(), nil
}

// Names lists registered schemes in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Resolve maps names to schemes, expanding All and dropping duplicates.
// An empty list resolves to the Euler schemes.
func (r *Registry) Resolve(names []string) ([]Scheme, error) {
	if len(names) == 0 {
		names = []string{All}
	}

	seen := make(map[string]bool)
	var out []Scheme
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			expanded = Euler
		}
		for _, n := range expanded {
			if seen[n] {
				continue
			}
			s, err := r.Get(n)
			if err != nil {
				return nil, err
			}
			seen[n] = true
			out = append(out, s)
		}
	}
	return out, nil
}
