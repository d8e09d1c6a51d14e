package engines

import (
	"fmt"

	"competition-service/apperr"
)

// Registry maps sport codes to their scoring engines. It is built
// once in main and handed to the match service by reference — there
// is no package-global registration and nothing mutates it after
// construction.
type Registry struct {
	engines map[string]ScoringEngine
}

// NewRegistry builds a registry from the given engines. Registering
// two engines for the same sport code is a programming error and
// panics at startup rather than shadowing silently.
func NewRegistry(list ...ScoringEngine) *Registry {
	r := &Registry{engines: make(map[string]ScoringEngine, len(list))}
	for _, e := range list {
		code := e.SportCode()
		if _, dup := r.engines[code]; dup {
			panic(fmt.Sprintf("engines: duplicate registration for sport %q", code))
		}
		r.engines[code] = e
	}
	return r
}

// Resolve returns the engine for sportCode, failing loudly with
// UNSUPPORTED_SPORT for codes nothing was registered under.
func (r *Registry) Resolve(sportCode string) (ScoringEngine, error) {
	e, ok := r.engines[sportCode]
	if !ok {
		return nil, apperr.Invalid(apperr.CodeUnsupportedSport, "no scoring engine registered for sport %q", sportCode)
	}
	return e, nil
}

// Default wires every engine the service ships with.
func Default() *Registry {
	return NewRegistry(
		NewBadmintonEngine(),
	)
}
