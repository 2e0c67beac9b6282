package patcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vulcandth/gb-save-patcher/pkg/patch"
	"github.com/vulcandth/gb-save-patcher/pkg/save"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

const versionAddr = save.Address(0)

type bumpVersion struct {
	id       string
	from, to uint16
	fail     error
}

func (p bumpVersion) Metadata() patch.Metadata {
	return patch.Metadata{ID: p.id, Kind: patch.Migration, From: p.from, To: p.to}
}

func (p bumpVersion) Apply(b *save.Binary, _ *symdb.DB) error {
	if p.fail != nil {
		return p.fail
	}
	return b.WriteU16LE(versionAddr, p.to)
}

func (p bumpVersion) ApplyWithLog(b *save.Binary, syms *symdb.DB, sink patch.Sink) error {
	patch.Infof(sink, p.id, "migrating %d -> %d", p.from, p.to)
	return p.Apply(b, syms)
}

type sealFix struct{}

func (sealFix) Metadata() patch.Metadata {
	return patch.Metadata{ID: "test.fix.seal", Kind: patch.Fix}
}

func (sealFix) Apply(b *save.Binary, _ *symdb.DB) error {
	return b.WriteU8(2, 0xAA)
}

type testGame struct {
	migrations []patch.Patch
	fixes      []Fix
	validate   error
}

func (g *testGame) DetectVersion(b *save.Binary) (uint16, error) {
	if err := b.RequireMinSize(2); err != nil {
		return 0, err
	}
	return b.ReadU16LE(versionAddr)
}

func (g *testGame) Symbols(uint16) (*symdb.DB, error) {
	return symdb.NewDB(), nil
}

func (g *testGame) Migrations() []patch.Patch {
	return g.migrations
}

func (g *testGame) Fixes() []Fix {
	return g.fixes
}

func (g *testGame) Validate(b *save.Binary, sink patch.Sink) error {
	if g.validate != nil {
		return g.validate
	}
	patch.Infof(sink, "test.validation", "validation passed")
	return nil
}

func newTestGame() *testGame {
	return &testGame{
		migrations: []patch.Patch{
			bumpVersion{id: "test.migration.v1_to_v2", from: 1, to: 2},
			bumpVersion{id: "test.migration.v2_to_v3", from: 2, to: 3},
		},
		fixes: []Fix{{DevType: 1, Patch: sealFix{}}},
	}
}

func saveWithVersion(v uint16) []byte {
	data := make([]byte, 8)
	data[0] = uint8(v)
	data[1] = uint8(v >> 8)
	return data
}

func TestPatchMigratesThroughChain(t *testing.T) {
	out, err := Patch(newTestGame(), saveWithVersion(1), 3, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint8(3), out[0])
	assert.Equal(t, uint8(0), out[1])
}

func TestPatchSameVersionIsNoop(t *testing.T) {
	data := saveWithVersion(3)
	out, err := Patch(newTestGame(), data, 3, 0)
	assert.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestPatchWithLogRecordsPlanAndSteps(t *testing.T) {
	outcome := PatchWithLog(newTestGame(), saveWithVersion(1), 3, 0)
	assert.NoError(t, outcome.Err)
	assert.NotNil(t, outcome.Bytes)

	var messages []string
	for _, e := range outcome.Logs {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "validation passed")
	assert.Contains(t, messages, "migration plan 1 -> 3: test.migration.v1_to_v2 -> test.migration.v2_to_v3")
	assert.Contains(t, messages, "migrating 1 -> 2")
	assert.Contains(t, messages, "migrating 2 -> 3")
}

func TestPatchWithLogKeepsEntriesOnFailure(t *testing.T) {
	game := newTestGame()
	stepErr := errors.New("step exploded")
	game.migrations[1] = bumpVersion{id: "test.migration.v2_to_v3", from: 2, to: 3, fail: stepErr}

	outcome := PatchWithLog(game, saveWithVersion(1), 3, 0)
	assert.ErrorIs(t, outcome.Err, stepErr)
	assert.Nil(t, outcome.Bytes)

	// entries up to the failing step survive, plus the error entry itself
	assert.NotEmpty(t, outcome.Logs)
	last := outcome.Logs[len(outcome.Logs)-1]
	assert.Equal(t, patch.Error, last.Level)
	assert.Equal(t, "test.migration.v2_to_v3", last.Source)
}

func TestPatchDowngradeFails(t *testing.T) {
	_, err := Patch(newTestGame(), saveWithVersion(3), 1, 0)
	assert.ErrorIs(t, err, patch.ErrUnsupportedDirection)
}

func TestFixRequiresMatchingTarget(t *testing.T) {
	_, err := Patch(newTestGame(), saveWithVersion(2), 3, 1)
	assert.ErrorIs(t, err, ErrInvalidSaveState)
}

func TestFixAppliesWithoutVersionChange(t *testing.T) {
	out, err := Patch(newTestGame(), saveWithVersion(2), 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, uint8(2), out[0])
	assert.Equal(t, uint8(0xAA), out[2])
}

func TestUnknownFix(t *testing.T) {
	_, err := Patch(newTestGame(), saveWithVersion(2), 2, 9)
	assert.ErrorIs(t, err, ErrUnknownFix)
}

func TestValidateFailureAbortsBeforePatching(t *testing.T) {
	game := newTestGame()
	game.validate = errors.New("backup checksum mismatch")

	outcome := PatchWithLog(game, saveWithVersion(1), 3, 0)
	assert.ErrorContains(t, outcome.Err, "backup checksum mismatch")
	assert.Nil(t, outcome.Bytes)
	assert.Len(t, outcome.Logs, 1)
	assert.Equal(t, patch.Error, outcome.Logs[0].Level)
}

func TestDetectVersion(t *testing.T) {
	v, err := DetectVersion(newTestGame(), saveWithVersion(7))
	assert.NoError(t, err)
	assert.Equal(t, uint16(7), v)

	_, err = DetectVersion(newTestGame(), []byte{1})
	assert.ErrorIs(t, err, save.ErrSaveTooSmall)
}

func TestTeeFansOut(t *testing.T) {
	var a, b patch.Recorder
	sink := Tee(&a, &b)
	patch.Infof(sink, "src", "hello")
	assert.Len(t, a.Entries(), 1)
	assert.Len(t, b.Entries(), 1)
}
