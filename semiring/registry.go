package semiring

import (
	"fmt"
	"sort"
	"sync"
)

// The registry maps a semiring name to a factory producing its strategy
// object, so embedding applications can select a weight algebra from a
// string (e.g. a persisted automaton header or a command-line flag)
// without knowing the concrete Go type.
//
// Registration is explicit: nothing registers itself at load time.
// Call RegisterBuiltins once at process start, then Register any
// application-defined semirings, and treat the registry as read-only
// afterwards. The mutex only guards the registration window.

var (
	regMu  sync.Mutex
	regMap = make(map[string]func() any)
)

// Register associates name with a factory returning a Semiring[W]
// (as any; callers recover the concrete type via LookupAs).
// Returns ErrEmptyName, ErrNilFactory, or ErrDuplicateSemiring.
func Register(name string, factory func() any) error {
	if name == "" {
		return ErrEmptyName
	}
	if factory == nil {
		return ErrNilFactory
	}

	regMu.Lock()
	defer regMu.Unlock()

	if _, exists := regMap[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSemiring, name)
	}
	regMap[name] = factory

	return nil
}

// Lookup returns the factory registered under name.
func Lookup(name string) (func() any, bool) {
	regMu.Lock()
	defer regMu.Unlock()

	f, ok := regMap[name]

	return f, ok
}

// LookupAs retrieves the factory for name and asserts its product to
// Semiring[W]. The second return is false when the name is unknown or
// registered under a different weight type.
func LookupAs[W any](name string) (Semiring[W], bool) {
	f, ok := Lookup(name)
	if !ok {
		return nil, false
	}
	sr, ok := f().(Semiring[W])

	return sr, ok
}

// Names returns the registered names in sorted order.
func Names() []string {
	regMu.Lock()
	defer regMu.Unlock()

	names := make([]string, 0, len(regMap))
	for name := range regMap {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// RegisterBuiltins installs the built-in semirings (tropical, log,
// boolean, tropical_tropical). Idempotent: repeated calls are no-ops.
func RegisterBuiltins() {
	// Duplicate errors are deliberately ignored: a second call must not
	// disturb an already populated registry.
	_ = Register("tropical", func() any { return Semiring[float64](Tropical{}) })
	_ = Register("log", func() any { return Semiring[float64](Log{}) })
	_ = Register("boolean", func() any { return Semiring[bool](Boolean{}) })
	_ = Register("tropical_tropical", func() any {
		return Semiring[Pair[float64, float64]](NewProduct[float64, float64](Tropical{}, Tropical{}))
	})
}
