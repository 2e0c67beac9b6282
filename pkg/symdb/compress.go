package symdb

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// FromGzip decompresses a gzip-compressed .sym payload and parses it.
func FromGzip(payload []byte) (*DB, error) {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer zr.Close()

	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return ParseText(string(text)), nil
}

// FromXZ decompresses an xz-compressed .sym payload and parses it.
func FromXZ(payload []byte) (*DB, error) {
	xr, err := xz.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	text, err := io.ReadAll(xr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return ParseText(string(text)), nil
}

// FromBytes sniffs the payload magic and dispatches to the gzip or xz
// decoder, falling back to plain text.
func FromBytes(payload []byte) (*DB, error) {
	switch {
	case len(payload) >= 2 && payload[0] == 0x1F && payload[1] == 0x8B:
		return FromGzip(payload)
	case bytes.HasPrefix(payload, xzMagic):
		return FromXZ(payload)
	default:
		return ParseText(string(payload)), nil
	}
}
