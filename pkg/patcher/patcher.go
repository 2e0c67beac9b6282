// Package patcher composes the patch framework with a game-specific
// collaborator: it detects the save version, resolves a migration plan or
// looks up a fix, and applies each step with the symbols valid for it.
// Buffers never leave the package partially patched; on failure only the
// collected logs and the error come back.
package patcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vulcandth/gb-save-patcher/pkg/patch"
	"github.com/vulcandth/gb-save-patcher/pkg/save"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

const logSource = "patcher"

var (
	// ErrUnknownFix is returned when no fix patch is registered for a
	// requested device type.
	ErrUnknownFix = errors.New("unknown fix patch")
	// ErrInvalidSaveState is returned when a precondition on the save
	// prevents safe patching.
	ErrInvalidSaveState = errors.New("invalid save state")
	// ErrUnsupportedVersion is returned when a game has no symbol set or
	// migration path for a detected save version.
	ErrUnsupportedVersion = errors.New("unsupported save version")
)

// Fix binds a non-migrating patch to the device/variant identifier that
// selects it.
type Fix struct {
	DevType uint8
	Patch   patch.Patch
}

// Game supplies everything the patcher needs to know about a specific
// game's save format. Implementations are read-only and safe for concurrent
// use.
type Game interface {
	// DetectVersion reads the save's declared version from raw bytes.
	DetectVersion(b *save.Binary) (uint16, error)

	// Symbols returns the symbol database valid at version.
	Symbols(version uint16) (*symdb.DB, error)

	// Migrations returns the registered migration patches.
	Migrations() []patch.Patch

	// Fixes returns the registered fix patches.
	Fixes() []Fix

	// Validate runs preflight checks before any patch is applied.
	Validate(b *save.Binary, sink patch.Sink) error
}

// Outcome is the structured result of PatchWithLog. Bytes is nil when Err is
// set; Logs always holds everything recorded up to the failure point.
type Outcome struct {
	Bytes []byte
	Logs  []patch.Entry
	Err   error
}

// DetectVersion reads the save version of raw bytes using the game's
// detection rule.
func DetectVersion(game Game, data []byte) (uint16, error) {
	return game.DetectVersion(save.New(data))
}

// Patch applies either a migration to target (devType == 0) or the fix patch
// selected by devType (which must not change the version; target has to
// equal the save's current version). It returns the patched bytes, or an
// error with no bytes.
func Patch(game Game, data []byte, target uint16, devType uint8) ([]byte, error) {
	b := save.New(data)
	if err := run(game, b, target, devType, patch.Discard); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// PatchWithSink is Patch with a caller-supplied log sink, for shells that
// stream entries as they are produced.
func PatchWithSink(game Game, data []byte, target uint16, devType uint8, sink patch.Sink) ([]byte, error) {
	b := save.New(data)
	if err := run(game, b, target, devType, sink); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// PatchWithLog is Patch with log capture: entries recorded up to a failure
// are preserved in the outcome alongside the error.
func PatchWithLog(game Game, data []byte, target uint16, devType uint8) Outcome {
	var rec patch.Recorder
	b := save.New(data)
	if err := run(game, b, target, devType, &rec); err != nil {
		return Outcome{Logs: rec.Entries(), Err: err}
	}
	return Outcome{Bytes: b.Bytes(), Logs: rec.Entries()}
}

func run(game Game, b *save.Binary, target uint16, devType uint8, sink patch.Sink) error {
	if err := game.Validate(b, sink); err != nil {
		patch.Errorf(sink, logSource, "%v", err)
		return err
	}

	current, err := game.DetectVersion(b)
	if err != nil {
		patch.Errorf(sink, logSource, "%v", err)
		return err
	}

	if devType != 0 {
		return runFix(game, b, current, target, devType, sink)
	}

	if current == target {
		return nil
	}

	plan, err := patch.ResolvePlan(game.Migrations(), current, target)
	if err != nil {
		patch.Errorf(sink, logSource, "%v", err)
		return err
	}

	patch.Infof(sink, logSource, "migration plan %d -> %d: %s", current, target, planIDs(plan))

	for _, p := range plan {
		meta := p.Metadata()
		syms, err := game.Symbols(meta.From)
		if err != nil {
			patch.Errorf(sink, logSource, "%v", err)
			return err
		}
		if err := patch.Apply(p, b, syms, sink); err != nil {
			patch.Errorf(sink, meta.ID, "%v", err)
			return err
		}
	}
	return nil
}

func runFix(game Game, b *save.Binary, current, target uint16, devType uint8, sink patch.Sink) error {
	if target != current {
		err := fmt.Errorf("%w: fix patches do not migrate; target version %d must match current save version %d",
			ErrInvalidSaveState, target, current)
		patch.Errorf(sink, logSource, "%v", err)
		return err
	}

	fix, ok := findFix(game.Fixes(), devType)
	if !ok {
		err := fmt.Errorf("%w: dev_type=%d", ErrUnknownFix, devType)
		patch.Errorf(sink, logSource, "%v", err)
		return err
	}

	patch.Infof(sink, logSource, "applying fix patch dev_type=%d id=%s", devType, fix.Patch.Metadata().ID)

	syms, err := game.Symbols(current)
	if err != nil {
		patch.Errorf(sink, logSource, "%v", err)
		return err
	}
	if err := patch.Apply(fix.Patch, b, syms, sink); err != nil {
		patch.Errorf(sink, fix.Patch.Metadata().ID, "%v", err)
		return err
	}
	return nil
}

func findFix(fixes []Fix, devType uint8) (Fix, bool) {
	for _, f := range fixes {
		if f.DevType == devType {
			return f, true
		}
	}
	return Fix{}, false
}

func planIDs(plan []patch.Patch) string {
	ids := make([]string, 0, len(plan))
	for _, p := range plan {
		ids = append(ids, p.Metadata().ID)
	}
	return strings.Join(ids, " -> ")
}
