package example

import (
	"github.com/vulcandth/gb-save-patcher/pkg/patch"
	"github.com/vulcandth/gb-save-patcher/pkg/save"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

const resealChecksumID = "example.fix.reseal_checksum"

// resealChecksum recomputes the main data checksum and stores it, without
// touching the save version. Selected by dev_type 1.
type resealChecksum struct{}

func (resealChecksum) Metadata() patch.Metadata {
	return patch.Metadata{ID: resealChecksumID, Kind: patch.Fix}
}

func (p resealChecksum) Apply(b *save.Binary, syms *symdb.DB) error {
	return p.ApplyWithLog(b, syms, patch.Discard)
}

func (resealChecksum) ApplyWithLog(b *save.Binary, syms *symdb.DB, sink patch.Sink) error {
	stored, calculated, err := mainChecksum(b, syms)
	if err != nil {
		return err
	}
	if stored == calculated {
		patch.Infof(sink, resealChecksumID, "main checksum already valid (0x%04X)", stored)
		return nil
	}

	sum, err := sealMainChecksum(b, syms)
	if err != nil {
		return err
	}
	patch.Infof(sink, resealChecksumID, "resealed main checksum: 0x%04X -> 0x%04X", stored, sum)
	return nil
}
