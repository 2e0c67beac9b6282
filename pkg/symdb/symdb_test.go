package symdb

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"github.com/vulcandth/gb-save-patcher/pkg/save"
)

func TestParseTextSkipsMalformedLines(t *testing.T) {
	text := "00:ABE2 sSaveVersion\n" +
		"invalid\n" +
		"01:AD0D sChecksum\n" +
		"0:ABCD shortBank\n" +
		"00:ABC shortAddr\n" +
		"00:ABCD name extra\n" +
		"00:ABCD bad-char\n" +
		"GG:ABCD notHexBank\n"
	db := ParseText(text)

	if db.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", db.Len())
	}
	sym, err := db.Symbol("sSaveVersion")
	if err != nil {
		t.Fatal(err)
	}
	if sym.Bank != 0x00 || sym.Addr != 0xABE2 {
		t.Errorf("sSaveVersion = %+v", sym)
	}
	if !db.Contains("sChecksum") {
		t.Error("missing sChecksum")
	}
}

func TestParseTextLastDuplicateWins(t *testing.T) {
	db := ParseText("00:0001 dup\n00:0002 dup\n")
	sym, err := db.Symbol("dup")
	if err != nil {
		t.Fatal(err)
	}
	if sym.Addr != 0x0002 {
		t.Errorf("dup addr = %#04x, want 0x0002", sym.Addr)
	}
}

func TestMissingSymbol(t *testing.T) {
	db := NewDB()
	if _, err := db.Symbol("nope"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("err = %v, want ErrSymbolNotFound", err)
	}
}

func TestSRAMAbsolute(t *testing.T) {
	db := ParseText("03:A123 sBanked\n00:C000 wFixed\n")

	addr, err := db.SRAMAbsolute("sBanked")
	if err != nil {
		t.Fatal(err)
	}
	if want := save.Address(3*0x2000 + 0x0123); addr != want {
		t.Errorf("SRAMAbsolute = %s, want %s", addr, want)
	}

	if _, err := db.SRAMAbsolute("wFixed"); !errors.Is(err, ErrNotInRegion) {
		t.Errorf("err = %v, want ErrNotInRegion", err)
	}
}

func TestRegionClassification(t *testing.T) {
	tests := []struct {
		addr       uint16
		sram, wram bool
	}{
		{0x9FFF, false, false},
		{0xA000, true, false},
		{0xBFFF, true, false},
		{0xC000, false, true},
		{0xDFFF, false, true},
		{0xE000, false, false},
	}
	for _, tt := range tests {
		if got := IsSRAMAddr(tt.addr); got != tt.sram {
			t.Errorf("IsSRAMAddr(%#04x) = %v", tt.addr, got)
		}
		if got := IsWRAMAddr(tt.addr); got != tt.wram {
			t.Errorf("IsWRAMAddr(%#04x) = %v", tt.addr, got)
		}
	}
}

func TestWRAMRelativeToSRAMAbsolute(t *testing.T) {
	db := ParseText(
		"00:C100 wPlayer\n" +
			"00:C108 wPlayerName\n" +
			"01:A050 sPlayer\n" +
			"00:A000 sNotWram\n",
	)

	addr, err := db.WRAMRelativeToSRAMAbsolute("wPlayer", "sPlayer", "wPlayerName")
	if err != nil {
		t.Fatal(err)
	}
	if want := save.Address(0x2000 + 0x0050 + 8); addr != want {
		t.Errorf("addr = %s, want %s", addr, want)
	}

	// symbol earlier than the base
	if _, err := db.WRAMRelativeToSRAMAbsolute("wPlayerName", "sPlayer", "wPlayer"); !errors.Is(err, ErrSymbolBeforeBase) {
		t.Errorf("err = %v, want ErrSymbolBeforeBase", err)
	}

	// operands outside WRAM
	if _, err := db.WRAMRelativeToSRAMAbsolute("sNotWram", "sPlayer", "wPlayerName"); !errors.Is(err, ErrNotInRegion) {
		t.Errorf("err = %v, want ErrNotInRegion", err)
	}
	if _, err := db.WRAMRelativeToSRAMAbsolute("wPlayer", "sPlayer", "sNotWram"); !errors.Is(err, ErrNotInRegion) {
		t.Errorf("err = %v, want ErrNotInRegion", err)
	}

	// base SRAM symbol outside SRAM
	if _, err := db.WRAMRelativeToSRAMAbsolute("wPlayer", "wPlayerName", "wPlayerName"); !errors.Is(err, ErrNotInRegion) {
		t.Errorf("err = %v, want ErrNotInRegion", err)
	}
}

func TestFromGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("00:ABE2 sSaveVersion\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := FromGzip(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !db.Contains("sSaveVersion") {
		t.Error("missing sSaveVersion")
	}

	if _, err := FromGzip([]byte("not gzip at all")); !errors.Is(err, ErrDecompression) {
		t.Errorf("err = %v, want ErrDecompression", err)
	}
}

func TestFromBytesSniffsFormat(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte("00:ABE2 sGz\n"))
	zw.Close()

	db, err := FromBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !db.Contains("sGz") {
		t.Error("gzip payload not detected")
	}

	db, err = FromBytes([]byte("00:ABE2 sPlain\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !db.Contains("sPlain") {
		t.Error("plain payload not parsed")
	}
}
