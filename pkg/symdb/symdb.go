// Package symdb resolves named program symbols to absolute save-buffer
// offsets. Symbols come from rgbds-style .sym listings, one `BB:AAAA NAME`
// entry per line, optionally gzip or xz compressed.
//
// Two 8KB address windows are recognized: SRAM [0xA000, 0xC000), whose
// symbols need bank-offset arithmetic, and WRAM [0xC000, 0xE000), which is
// fixed. Classification is a pure function of the raw 16-bit address.
package symdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vulcandth/gb-save-patcher/pkg/save"
)

const (
	sramStart = 0xA000
	sramEnd   = 0xC000
	wramStart = 0xC000
	wramEnd   = 0xE000

	bankSize = 0x2000
)

// Symbol is a single .sym entry: a memory bank plus an in-bank address.
type Symbol struct {
	Bank uint8
	Addr uint16
}

func (s Symbol) String() string {
	return fmt.Sprintf("%02X:%04X", s.Bank, s.Addr)
}

// DB is a read-only name to symbol lookup table. Build one with ParseText or
// the compressed variants; it must not be modified afterwards.
type DB struct {
	symbols map[string]Symbol
}

// NewDB returns an empty symbol database.
func NewDB() *DB {
	return &DB{symbols: make(map[string]Symbol)}
}

// ParseText parses a .sym text blob. Lines that do not match the expected
// format are skipped; on duplicate names the last occurrence wins. Parsing
// itself never fails.
func ParseText(text string) *DB {
	db := NewDB()
	for _, line := range strings.Split(text, "\n") {
		if name, sym, ok := parseSymLine(line); ok {
			db.symbols[name] = sym
		}
	}
	return db
}

// Len returns the number of symbols in the database.
func (db *DB) Len() int {
	return len(db.symbols)
}

// Contains reports whether name is present.
func (db *DB) Contains(name string) bool {
	_, ok := db.symbols[name]
	return ok
}

// Symbol looks up a symbol by name.
func (db *DB) Symbol(name string) (Symbol, error) {
	sym, ok := db.symbols[name]
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, name)
	}
	return sym, nil
}

// Each calls fn for every (name, symbol) pair, in map order.
func (db *DB) Each(fn func(name string, sym Symbol)) {
	for name, sym := range db.symbols {
		fn(name, sym)
	}
}

// IsSRAMAddr reports whether a raw address lies in the SRAM window.
func IsSRAMAddr(addr uint16) bool {
	return addr >= sramStart && addr < sramEnd
}

// IsWRAMAddr reports whether a raw address lies in the WRAM window.
func IsWRAMAddr(addr uint16) bool {
	return addr >= wramStart && addr < wramEnd
}

// SRAMAbsolute resolves a symbol expected to lie in SRAM into an absolute
// save-buffer offset: bank*0x2000 + (addr - 0xA000).
func (db *DB) SRAMAbsolute(name string) (save.Address, error) {
	sym, err := db.Symbol(name)
	if err != nil {
		return 0, err
	}
	if !IsSRAMAddr(sym.Addr) {
		return 0, fmt.Errorf("%w SRAM: %s (address=0x%04X)", ErrNotInRegion, name, sym.Addr)
	}
	return save.Address(uint32(sym.Bank)*bankSize + uint32(sym.Addr) - sramStart), nil
}

// WRAMRelativeToSRAMAbsolute projects a WRAM-relative offset onto an SRAM
// base: distance = addr(wramSym) - addr(baseWRAM), result = absolute
// address of baseSRAM plus that distance. Useful when the save layout
// mirrors a WRAM struct, so offset tables need not be duplicated.
func (db *DB) WRAMRelativeToSRAMAbsolute(baseWRAM, baseSRAM, wramSym string) (save.Address, error) {
	base, err := db.Symbol(baseWRAM)
	if err != nil {
		return 0, err
	}
	if !IsWRAMAddr(base.Addr) {
		return 0, fmt.Errorf("%w WRAM: %s (address=0x%04X)", ErrNotInRegion, baseWRAM, base.Addr)
	}

	sym, err := db.Symbol(wramSym)
	if err != nil {
		return 0, err
	}
	if !IsWRAMAddr(sym.Addr) {
		return 0, fmt.Errorf("%w WRAM: %s (address=0x%04X)", ErrNotInRegion, wramSym, sym.Addr)
	}

	if sym.Addr < base.Addr {
		return 0, fmt.Errorf("%w: %s is before %s", ErrSymbolBeforeBase, wramSym, baseWRAM)
	}
	distance := uint32(sym.Addr - base.Addr)

	abs, err := db.SRAMAbsolute(baseSRAM)
	if err != nil {
		return 0, err
	}
	return abs + save.Address(distance), nil
}

func parseSymLine(line string) (string, Symbol, bool) {
	fields := strings.Fields(strings.TrimRight(line, "\r\n"))
	if len(fields) != 2 {
		return "", Symbol{}, false
	}

	loc, name := fields[0], fields[1]
	bankStr, addrStr, ok := strings.Cut(loc, ":")
	if !ok || len(bankStr) != 2 || len(addrStr) != 4 {
		return "", Symbol{}, false
	}
	if !isHex(bankStr) || !isHex(addrStr) {
		return "", Symbol{}, false
	}

	bank, err := strconv.ParseUint(bankStr, 16, 8)
	if err != nil {
		return "", Symbol{}, false
	}
	addr, err := strconv.ParseUint(addrStr, 16, 16)
	if err != nil {
		return "", Symbol{}, false
	}

	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '.':
		default:
			return "", Symbol{}, false
		}
	}

	return name, Symbol{Bank: uint8(bank), Addr: uint16(addr)}, true
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
