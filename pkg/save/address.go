// Package save provides bounds-checked primitives for editing Game Boy
// save buffers: absolute addresses, half-open ranges and the Binary type
// with byte, word, bit and range accessors.
package save

import "fmt"

// Address is an absolute byte offset into a save buffer.
type Address uint32

// Int converts the address to an int for use as a slice index.
func (a Address) Int() int {
	return int(a)
}

func (a Address) String() string {
	return fmt.Sprintf("%#x", uint32(a))
}

// Size is a byte count.
type Size uint32

// Int converts the size to an int.
func (s Size) Int() int {
	return int(s)
}

func (s Size) String() string {
	return fmt.Sprintf("%d", uint32(s))
}

// AddressRange is a half-open byte range [Start, End).
type AddressRange struct {
	Start Address
	End   Address
}

// NewRange returns the half-open range [start, end).
func NewRange(start, end Address) AddressRange {
	return AddressRange{Start: start, End: end}
}

// Len returns the range length in bytes, saturating to zero when End
// precedes Start.
func (r AddressRange) Len() Size {
	if r.End < r.Start {
		return 0
	}
	return Size(r.End - r.Start)
}

func (r AddressRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}

// BitsToBytes returns the number of bytes required to store bits bits.
func BitsToBytes(bits int) int {
	return (bits + 7) / 8
}
