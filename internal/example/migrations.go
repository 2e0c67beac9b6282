package example

import (
	"github.com/vulcandth/gb-save-patcher/pkg/patch"
	"github.com/vulcandth/gb-save-patcher/pkg/remap"
	"github.com/vulcandth/gb-save-patcher/pkg/save"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

const (
	migrateV1ToV2ID = "example.migration.v1_to_v2"
	migrateV2ToV3ID = "example.migration.v2_to_v3"

	// sItems holds a zero-terminated item list of at most this many bytes.
	itemListMaxLen = 16

	// sEventFlags holds this many event flag bits.
	eventFlagCount = 96

	// v2 inserted a new item at this id; older ids shift up by one.
	firstShiftedItemID = 0x05

	// ids at or above this have no v2 equivalent
	maxItemID = 0xFE
)

// migrateV1ToV2 shifts item ids to make room for the item added in v2.
type migrateV1ToV2 struct{}

func (migrateV1ToV2) Metadata() patch.Metadata {
	return patch.Metadata{ID: migrateV1ToV2ID, Kind: patch.Migration, From: 1, To: 2}
}

func (p migrateV1ToV2) Apply(b *save.Binary, syms *symdb.DB) error {
	return p.ApplyWithLog(b, syms, patch.Discard)
}

func (migrateV1ToV2) ApplyWithLog(b *save.Binary, syms *symdb.DB, sink patch.Sink) error {
	patch.Infof(sink, migrateV1ToV2ID, "shifting item ids >= 0x%02X", firstShiftedItemID)

	items, err := syms.SRAMAbsolute("sItems")
	if err != nil {
		return err
	}
	err = remap.ZeroTerminated(b, items, itemListMaxLen,
		func(v uint8) (uint8, bool) {
			if v < firstShiftedItemID {
				return v, true
			}
			if v >= maxItemID {
				return 0, false
			}
			return v + 1, true
		},
		func(i int, v uint8) {
			patch.Warnf(sink, migrateV1ToV2ID, "item slot %d holds unknown id 0x%02X; left untouched", i, v)
		},
	)
	if err != nil {
		return err
	}

	if _, err := sealMainChecksum(b, syms); err != nil {
		return err
	}
	return writeVersion(b, syms, 2)
}

// migrateV2ToV3 shifts every event flag up by one bit; v3 claimed bit 0 for
// a new flag. The last old flag no longer fits and is dropped with a warning.
type migrateV2ToV3 struct{}

func (migrateV2ToV3) Metadata() patch.Metadata {
	return patch.Metadata{ID: migrateV2ToV3ID, Kind: patch.Migration, From: 2, To: 3}
}

func (p migrateV2ToV3) Apply(b *save.Binary, syms *symdb.DB) error {
	return p.ApplyWithLog(b, syms, patch.Discard)
}

func (migrateV2ToV3) ApplyWithLog(b *save.Binary, syms *symdb.DB, sink patch.Sink) error {
	patch.Infof(sink, migrateV2ToV3ID, "shifting %d event flags up by one", eventFlagCount)

	flags, err := syms.SRAMAbsolute("sEventFlags")
	if err != nil {
		return err
	}

	flagBytes := save.Size(save.BitsToBytes(eventFlagCount))
	old, err := b.ReadBytes(save.NewRange(flags, flags+save.Address(flagBytes)))
	if err != nil {
		return err
	}
	snapshot := save.New(old)

	if err := b.ClearLen(flags, flagBytes); err != nil {
		return err
	}
	err = remap.MapBitset(snapshot, 0, eventFlagCount, b, flags, eventFlagCount,
		func(i int) (int, bool) { return i + 1, true },
		func(i int) {
			patch.Warnf(sink, migrateV2ToV3ID, "event flag %d has no slot in the new layout; dropped", i)
		},
	)
	if err != nil {
		return err
	}

	if _, err := sealMainChecksum(b, syms); err != nil {
		return err
	}
	return writeVersion(b, syms, 3)
}
