// Package flags provides feature flags for optional editor behaviour.
// Flags are read-only after initialization and unknown flags are disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/caret/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagWatchFile shows a notice when the open file changes on disk.
	FlagWatchFile = "watch-file"

	// FlagMouse places the cursor on mouse clicks.
	FlagMouse = "mouse"

	// FlagRememberCursor restores the last cursor position when a file is
	// reopened. Requires history.path to be set.
	FlagRememberCursor = "remember-cursor"
)

// defaults holds the value of every known flag when config leaves it unset.
var defaults = map[string]bool{
	FlagWatchFile:      true,
	FlagMouse:          true,
	FlagRememberCursor: true,
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags   map[string]bool
	unknown []string
}

// New creates a Registry from a config map laid over the defaults.
// A nil map yields the defaults.
func New(overrides map[string]bool) *Registry {
	flags := maps.Clone(defaults)
	var unknown []string
	for name, value := range overrides {
		if _, ok := defaults[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		flags[name] = value
	}
	slices.Sort(unknown)

	r := &Registry{flags: flags, unknown: unknown}
	log.Debug(log.CatConfig, "Feature flags initialized", "flags", r.All(), "unknown", unknown)
	return r
}

// Enabled reports whether the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// Unknown returns the configured flag names that caret does not recognise.
func (r *Registry) Unknown() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.unknown)
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
