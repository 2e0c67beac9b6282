// Package example is a small but complete game wired into the CLI: a save
// layout with a version field and an additive checksum, per-version symbol
// files, a migration chain and a fix patch. Real games plug into the same
// patcher.Game contract.
package example

import (
	_ "embed"
	"fmt"

	"github.com/vulcandth/gb-save-patcher/pkg/patch"
	"github.com/vulcandth/gb-save-patcher/pkg/patcher"
	"github.com/vulcandth/gb-save-patcher/pkg/save"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

// MinSaveSize is the smallest buffer the example layout fits in.
const MinSaveSize = 0x200

const validationLogSource = "example.validation"

//go:embed data/v1.sym.gz
var v1SymData []byte

//go:embed data/v2.sym.gz
var v2SymData []byte

//go:embed data/v3.sym.gz
var v3SymData []byte

// Game implements patcher.Game for the example save layout. The zero value
// is not usable; call New.
type Game struct {
	symbols map[uint16]*symdb.DB
}

// New parses the embedded per-version symbol files and returns the game.
func New() (*Game, error) {
	g := &Game{symbols: make(map[uint16]*symdb.DB)}
	for version, data := range map[uint16][]byte{1: v1SymData, 2: v2SymData, 3: v3SymData} {
		db, err := symdb.FromGzip(data)
		if err != nil {
			return nil, fmt.Errorf("symbols for version %d: %w", version, err)
		}
		g.symbols[version] = db
	}
	return g, nil
}

// DetectVersion reads the save version stored little-endian at the start of
// the buffer.
func (g *Game) DetectVersion(b *save.Binary) (uint16, error) {
	if err := b.RequireMinSize(2); err != nil {
		return 0, err
	}
	return b.ReadU16LE(0)
}

// Symbols returns the symbol database valid at version.
func (g *Game) Symbols(version uint16) (*symdb.DB, error) {
	db, ok := g.symbols[version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", patcher.ErrUnsupportedVersion, version)
	}
	return db, nil
}

// Migrations returns the example migration chain.
func (g *Game) Migrations() []patch.Patch {
	return []patch.Patch{migrateV1ToV2{}, migrateV2ToV3{}}
}

// Fixes returns the example fix patches.
func (g *Game) Fixes() []patcher.Fix {
	return []patcher.Fix{{DevType: 1, Patch: resealChecksum{}}}
}

// Validate checks the buffer size and, for saves that carry one, the stored
// main checksum. A stale checksum is only a warning; the reseal fix exists
// for exactly that state.
func (g *Game) Validate(b *save.Binary, sink patch.Sink) error {
	if err := b.RequireMinSize(MinSaveSize); err != nil {
		return err
	}

	version, err := g.DetectVersion(b)
	if err != nil {
		return err
	}

	if syms, ok := g.symbols[version]; ok && version >= 2 {
		stored, calculated, err := mainChecksum(b, syms)
		if err != nil {
			return err
		}
		if stored != calculated {
			patch.Warnf(sink, validationLogSource,
				"main checksum mismatch: stored=0x%04X calculated=0x%04X", stored, calculated)
		}
	}

	patch.Infof(sink, validationLogSource, "validation passed")
	return nil
}

// mainChecksum returns the stored and freshly calculated main data checksum.
func mainChecksum(b *save.Binary, syms *symdb.DB) (stored, calculated uint16, err error) {
	checksumAddr, err := syms.SRAMAbsolute("sMainChecksum")
	if err != nil {
		return 0, 0, err
	}
	start, err := syms.SRAMAbsolute("sMainData")
	if err != nil {
		return 0, 0, err
	}
	end, err := syms.SRAMAbsolute("sMainDataEnd")
	if err != nil {
		return 0, 0, err
	}

	stored, err = b.ReadU16LE(checksumAddr)
	if err != nil {
		return 0, 0, err
	}
	calculated, err = save.Checksum(b, save.NewRange(start, end))
	if err != nil {
		return 0, 0, err
	}
	return stored, calculated, nil
}

// sealMainChecksum recomputes the main data checksum and stores it.
func sealMainChecksum(b *save.Binary, syms *symdb.DB) (uint16, error) {
	checksumAddr, err := syms.SRAMAbsolute("sMainChecksum")
	if err != nil {
		return 0, err
	}
	start, err := syms.SRAMAbsolute("sMainData")
	if err != nil {
		return 0, err
	}
	end, err := syms.SRAMAbsolute("sMainDataEnd")
	if err != nil {
		return 0, err
	}

	sum, err := save.Checksum(b, save.NewRange(start, end))
	if err != nil {
		return 0, err
	}
	return sum, b.WriteU16LE(checksumAddr, sum)
}

func writeVersion(b *save.Binary, syms *symdb.DB, version uint16) error {
	addr, err := syms.SRAMAbsolute("sSaveVersion")
	if err != nil {
		return err
	}
	return b.WriteU16LE(addr, version)
}
