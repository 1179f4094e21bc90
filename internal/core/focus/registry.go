package focus

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/hay-kot/criterio"
)

// ErrModeNotFound is returned by Lookup for names absent from the table.
var ErrModeNotFound = errors.New("mode not found")

// Registry is the read-only table of focus modes. It is safe for concurrent
// use because nothing mutates it after NewRegistry returns.
type Registry struct {
	modes map[string]Mode
}

// NewRegistry validates modes and builds a Registry from them. A table entry
// named "clear" is ignored; Lookup always resolves "clear" to the implicit
// clear mode.
func NewRegistry(modes map[string]Mode) (*Registry, error) {
	if err := ValidateModes(modes); err != nil {
		return nil, err
	}

	r := &Registry{modes: make(map[string]Mode, len(modes))}
	for name, m := range modes {
		if name == ClearModeName {
			continue
		}
		m.Name = name
		r.modes[name] = m
	}

	return r, nil
}

// MustNewRegistry is NewRegistry for tables known to be valid at compile time.
func MustNewRegistry(modes map[string]Mode) *Registry {
	r, err := NewRegistry(modes)
	if err != nil {
		panic(fmt.Sprintf("focus: invalid mode table: %v", err))
	}
	return r
}

// Lookup returns the mode stored under name.
func (r *Registry) Lookup(name string) (Mode, error) {
	if name == ClearModeName {
		return clearMode(), nil
	}

	m, ok := r.modes[name]
	if !ok {
		return Mode{}, fmt.Errorf("%w: %q", ErrModeNotFound, name)
	}
	return m, nil
}

// Names returns every resolvable mode name, including "clear", sorted.
func (r *Registry) Names() []string {
	names := slices.Collect(maps.Keys(r.modes))
	names = append(names, ClearModeName)
	slices.Sort(names)
	return names
}

// Modes returns the stored modes sorted by name. The implicit clear mode is
// not included.
func (r *Registry) Modes() []Mode {
	out := make([]Mode, 0, len(r.modes))
	for _, name := range slices.Sorted(maps.Keys(r.modes)) {
		out = append(out, r.modes[name])
	}
	return out
}

// ValidateModes checks a mode table without building a Registry.
func ValidateModes(modes map[string]Mode) error {
	var errs criterio.FieldErrorsBuilder

	for _, name := range slices.Sorted(maps.Keys(modes)) {
		m := modes[name]
		field := fmt.Sprintf("modes[%q]", name)

		if strings.TrimSpace(name) == "" {
			errs = errs.Append(field, errors.New("name cannot be empty"))
			continue
		}
		if strings.ContainsFunc(name, unicode.IsSpace) {
			errs = errs.Append(field, errors.New("name cannot contain whitespace"))
		}
		if name == ClearModeName {
			continue
		}
		if !m.Presence.IsValid() {
			errs = errs.Append(field+".presence", fmt.Errorf("invalid presence %q (want active, away or auto)", m.Presence))
		}
		if m.SnoozeMinutes < 0 {
			errs = errs.Append(field+".snooze_minutes", errors.New("must be positive"))
		}
		if m.SnoozeMinutes > 0 && m.Notifications {
			errs = errs.Append(field+".snooze_minutes", errors.New("cannot be set when notifications are enabled"))
		}
		if m.ExpirationMinutes < 0 {
			errs = errs.Append(field+".status_expiration_minutes", errors.New("must be positive"))
		}
	}

	return errs.ToError()
}
