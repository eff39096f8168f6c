package dimension

// Unit pairs a scale factor with the dimension it scales. Evaluating a unit
// expression against a registry of these yields one Unit by product of
// per-factor powers.
type Unit struct {
	Scale float64
	Dim   Dimension
}

// Value is the dimensionless unit of scale 1.
func Value() Unit { return Unit{Scale: 1, Dim: Dimensionless()} }

// Meter, Kilogram, Second, Ampere, Kelvin, Mole and Candela are the seven
// preregistered SI base units, each of scale 1.
func Meter() Unit    { return Unit{Scale: 1, Dim: L()} }
func Kilogram() Unit { return Unit{Scale: 1, Dim: M()} }
func Second() Unit   { return Unit{Scale: 1, Dim: T()} }
func Ampere() Unit   { return Unit{Scale: 1, Dim: I()} }
func Kelvin() Unit   { return Unit{Scale: 1, Dim: K()} }
func Mole() Unit     { return Unit{Scale: 1, Dim: N()} }
func Candela() Unit  { return Unit{Scale: 1, Dim: J()} }

// MulUnit multiplies two units: scales multiply, dimensions multiply.
func MulUnit(l, r Unit) Unit {
	return Unit{Scale: l.Scale * r.Scale, Dim: Mul(l.Dim, r.Dim)}
}

// DivUnit divides two units: scales divide, dimensions divide.
func DivUnit(l, r Unit) Unit {
	return Unit{Scale: l.Scale / r.Scale, Dim: Div(l.Dim, r.Dim)}
}

// PowUnit raises a unit to an integer power.
func PowUnit(u Unit, n int) Unit {
	scale := 1.0
	if n >= 0 {
		for k := 0; k < n; k++ {
			scale *= u.Scale
		}
	} else {
		for k := 0; k < -n; k++ {
			scale /= u.Scale
		}
	}
	return Unit{Scale: scale, Dim: Pow(u.Dim, n)}
}

// Registry maps unit names to their Unit, seeded with the seven base units.
type Registry struct {
	units map[string]Unit
	order []string
}

// NewRegistry returns a registry preloaded with the seven SI base units.
func NewRegistry() *Registry {
	r := &Registry{units: make(map[string]Unit)}
	r.add("m", Meter())
	r.add("kg", Kilogram())
	r.add("s", Second())
	r.add("A", Ampere())
	r.add("K", Kelvin())
	r.add("mol", Mole())
	r.add("cd", Candela())
	return r
}

func (r *Registry) add(name string, u Unit) {
	r.units[name] = u
	r.order = append(r.order, name)
}

// Lookup returns the unit registered under name, if any.
func (r *Registry) Lookup(name string) (Unit, bool) {
	u, ok := r.units[name]
	return u, ok
}

// Add registers a new unit name. It fails (returns false) if the name is
// already registered, matching AddUnit's "redefinition is an error"
// contract — the caller turns that into a DuplicateDefinition diagnostic.
func (r *Registry) Add(name string, u Unit) bool {
	if _, exists := r.units[name]; exists {
		return false
	}
	r.add(name, u)
	return true
}

// Names returns registered unit names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
