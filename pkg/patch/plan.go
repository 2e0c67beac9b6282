package patch

import "fmt"

// ResolvePlan chains migration patches from candidates into an ordered plan
// carrying a save from current to target. Fix-kind candidates are ignored.
//
// The walk is greedy and forward-only: at each step the first candidate whose
// From equals the running version and whose To strictly exceeds it is taken,
// so a catalog with at most one migration per version yields a deterministic
// plan in a single linear pass. Use ValidateCatalog to enforce that shape
// eagerly.
func ResolvePlan(candidates []Patch, current, target uint16) ([]Patch, error) {
	if current == target {
		return nil, nil
	}
	if current > target {
		return nil, fmt.Errorf("%w: %d -> %d", ErrUnsupportedDirection, current, target)
	}

	var plan []Patch
	v := current
	for v != target {
		next := findStep(candidates, v)
		if next == nil {
			return nil, fmt.Errorf("%w: from %d to reach %d", ErrMissingStep, v, target)
		}
		plan = append(plan, next)
		v = next.Metadata().To
	}
	return plan, nil
}

func findStep(candidates []Patch, from uint16) Patch {
	for _, p := range candidates {
		m := p.Metadata()
		if m.Kind == Migration && m.From == from && m.To > from {
			return p
		}
	}
	return nil
}

// ValidateCatalog checks that the migration entries in candidates form a
// deterministic forward graph: every migration advances its version and no
// two migrations start from the same version. ResolvePlan itself keeps the
// lenient first-match behavior, so strict callers run this once at startup.
func ValidateCatalog(candidates []Patch) error {
	seen := make(map[uint16]string)
	for _, p := range candidates {
		m := p.Metadata()
		if m.Kind != Migration {
			continue
		}
		if m.To <= m.From {
			return fmt.Errorf("%w: %s does not advance (%d -> %d)", ErrMalformedMigration, m.ID, m.From, m.To)
		}
		if prev, ok := seen[m.From]; ok {
			return fmt.Errorf("%w: %s and %s both start at version %d", ErrDuplicateStep, prev, m.ID, m.From)
		}
		seen[m.From] = m.ID
	}
	return nil
}
