// Package patch defines the patch capability applied to save buffers and the
// planner that chains versioned migrations into an ordered execution plan.
package patch

import (
	"fmt"

	"github.com/vulcandth/gb-save-patcher/pkg/save"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

// Kind discriminates migrations from fixes.
type Kind int

const (
	// Migration converts a save from one version to a strictly newer one.
	Migration Kind = iota
	// Fix repairs a save without changing its version. Fixes are selected
	// by an external device identifier, never by the planner.
	Fix
)

func (k Kind) String() string {
	switch k {
	case Migration:
		return "migration"
	case Fix:
		return "fix"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Metadata identifies a patch and, for migrations, its version edge.
// From and To are meaningful only when Kind is Migration; fixes leave them
// zero.
type Metadata struct {
	// ID is a stable identifier used in logs and debugging.
	ID string
	// Kind tells migrations and fixes apart.
	Kind Kind
	// From is the version this migration starts at.
	From uint16
	// To is the version this migration produces.
	To uint16
}

// Patch is a deterministic transformation of a save buffer. Implementations
// are stateless: they must not retain the buffer or symbols across calls, so
// a single instance can serve concurrent applications to distinct buffers.
type Patch interface {
	// Metadata returns the patch's fixed metadata.
	Metadata() Metadata

	// Apply performs the transformation, mutating b in place. It fails
	// without producing partial output when the buffer is unsuitable.
	Apply(b *save.Binary, syms *symdb.DB) error
}

// WithLog is implemented by patches that narrate their work. Entries are
// observational; an implementation that wants a logged condition to be fatal
// must also return an error.
type WithLog interface {
	Patch

	// ApplyWithLog applies the patch, recording entries into sink.
	ApplyWithLog(b *save.Binary, syms *symdb.DB, sink Sink) error
}

// Apply runs p against b, routing entries into sink when the patch supports
// logging and falling back to a silent Patch.Apply otherwise.
func Apply(p Patch, b *save.Binary, syms *symdb.DB, sink Sink) error {
	if lp, ok := p.(WithLog); ok {
		return lp.ApplyWithLog(b, syms, sink)
	}
	return p.Apply(b, syms)
}
