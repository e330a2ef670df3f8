package transient

import "fmt"

// SchemeNames lists the recognized scheme identifiers.
var SchemeNames = []string{"implicit", "bdf2", "explicit", "crank-nicolson"}

// New constructs a scheme by name.
func New(name string, p Problem, opts Options) (Scheme, error) {
	switch name {
	case "implicit", "euler-implicit":
		return NewImplicit(p, opts)
	case "bdf2":
		return NewBDF2(p, opts)
	case "explicit", "euler-explicit":
		return NewExplicit(p, opts)
	case "crank-nicolson", "cn":
		return NewCrankNicolson(p, opts)
	default:
		return nil, fmt.Errorf("transient: unknown scheme %q", name)
	}
}
