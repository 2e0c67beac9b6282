package save

import "fmt"

// Binary is a mutable save buffer with bounds-checked accessors.
//
// Every operation either succeeds and touches exactly the addressed bytes, or
// fails without mutating anything. A Binary is not safe for concurrent
// mutation; callers own the single-writer discipline.
type Binary struct {
	data []byte
}

// New wraps raw save bytes in a Binary. The buffer takes ownership of data.
func New(data []byte) *Binary {
	return &Binary{data: data}
}

// Bytes returns the underlying buffer. The slice remains valid until the
// next mutating call.
func (b *Binary) Bytes() []byte {
	return b.data
}

// Len returns the buffer length in bytes.
func (b *Binary) Len() int {
	return len(b.data)
}

// RequireMinSize fails if the buffer holds fewer than min bytes.
func (b *Binary) RequireMinSize(min int) error {
	if len(b.data) < min {
		return fmt.Errorf("%w: expected at least %d bytes, got %d", ErrSaveTooSmall, min, len(b.data))
	}
	return nil
}

func (b *Binary) checkAddress(addr Address) (int, error) {
	idx := addr.Int()
	if idx >= len(b.data) {
		return 0, fmt.Errorf("%w: address %s (len=%d)", ErrAddressOutOfBounds, addr, len(b.data))
	}
	return idx, nil
}

func (b *Binary) checkRange(r AddressRange) (int, int, error) {
	start, end := r.Start.Int(), r.End.Int()
	if start > end || end > len(b.data) {
		return 0, 0, fmt.Errorf("%w: range %s (len=%d)", ErrRangeOutOfBounds, r, len(b.data))
	}
	return start, end, nil
}

// ReadU8 reads the byte at addr.
func (b *Binary) ReadU8(addr Address) (uint8, error) {
	idx, err := b.checkAddress(addr)
	if err != nil {
		return 0, err
	}
	return b.data[idx], nil
}

// WriteU8 writes value at addr.
func (b *Binary) WriteU8(addr Address, value uint8) error {
	idx, err := b.checkAddress(addr)
	if err != nil {
		return err
	}
	b.data[idx] = value
	return nil
}

// ReadU16LE reads a little-endian 16-bit value at addr.
func (b *Binary) ReadU16LE(addr Address) (uint16, error) {
	lo, err := b.ReadU8(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.ReadU8(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// ReadU16BE reads a big-endian 16-bit value at addr.
func (b *Binary) ReadU16BE(addr Address) (uint16, error) {
	hi, err := b.ReadU8(addr)
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadU8(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteU16LE writes a little-endian 16-bit value at addr. The full two-byte
// span is validated before either byte is written.
func (b *Binary) WriteU16LE(addr Address, value uint16) error {
	start, _, err := b.checkRange(NewRange(addr, addr+2))
	if err != nil {
		return err
	}
	b.data[start] = uint8(value)
	b.data[start+1] = uint8(value >> 8)
	return nil
}

// WriteU16BE writes a big-endian 16-bit value at addr. The full two-byte
// span is validated before either byte is written.
func (b *Binary) WriteU16BE(addr Address, value uint16) error {
	start, _, err := b.checkRange(NewRange(addr, addr+2))
	if err != nil {
		return err
	}
	b.data[start] = uint8(value >> 8)
	b.data[start+1] = uint8(value)
	return nil
}

// ReadBytes returns a copy of the bytes in r.
func (b *Binary) ReadBytes(r AddressRange) ([]byte, error) {
	start, end, err := b.checkRange(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, end-start)
	copy(out, b.data[start:end])
	return out, nil
}

// Slice returns a view of the bytes in r. Writes through the returned slice
// mutate the buffer; the view remains valid until the buffer is replaced.
func (b *Binary) Slice(r AddressRange) ([]byte, error) {
	start, end, err := b.checkRange(r)
	if err != nil {
		return nil, err
	}
	return b.data[start:end], nil
}

// WriteBytes copies data into the buffer starting at start.
func (b *Binary) WriteBytes(start Address, data []byte) error {
	s, _, err := b.checkRange(NewRange(start, start+Address(len(data))))
	if err != nil {
		return err
	}
	copy(b.data[s:], data)
	return nil
}

// Fill sets every byte in r to value.
func (b *Binary) Fill(r AddressRange, value uint8) error {
	start, end, err := b.checkRange(r)
	if err != nil {
		return err
	}
	for i := start; i < end; i++ {
		b.data[i] = value
	}
	return nil
}

// FillLen sets n bytes starting at start to value. A zero length is a no-op.
func (b *Binary) FillLen(start Address, n Size, value uint8) error {
	if n == 0 {
		return nil
	}
	return b.Fill(NewRange(start, start+Address(n)), value)
}

// ClearLen zeroes n bytes starting at start.
func (b *Binary) ClearLen(start Address, n Size) error {
	return b.FillLen(start, n, 0)
}

// CopyFrom copies n bytes from src into this buffer. Both ranges are
// validated before any byte moves. A zero length is a no-op.
func (b *Binary) CopyFrom(src *Binary, srcStart, dstStart Address, n Size) error {
	if n == 0 {
		return nil
	}
	ss, se, err := src.checkRange(NewRange(srcStart, srcStart+Address(n)))
	if err != nil {
		return err
	}
	ds, _, err := b.checkRange(NewRange(dstStart, dstStart+Address(n)))
	if err != nil {
		return err
	}
	copy(b.data[ds:], src.data[ss:se])
	return nil
}

// CopyWithin copies n bytes from src to dst inside the same buffer.
// Overlapping ranges behave like memmove; the builtin copy already
// guarantees that. A zero length is a no-op.
func (b *Binary) CopyWithin(src, dst Address, n Size) error {
	if n == 0 {
		return nil
	}
	ss, se, err := b.checkRange(NewRange(src, src+Address(n)))
	if err != nil {
		return err
	}
	ds, _, err := b.checkRange(NewRange(dst, dst+Address(n)))
	if err != nil {
		return err
	}
	copy(b.data[ds:], b.data[ss:se])
	return nil
}

// ReadBit reports whether bit (0..=7) is set in the byte at addr.
func (b *Binary) ReadBit(addr Address, bit uint8) (bool, error) {
	if bit > 7 {
		return false, fmt.Errorf("%w: %d (expected 0..=7)", ErrInvalidBitIndex, bit)
	}
	v, err := b.ReadU8(addr)
	if err != nil {
		return false, err
	}
	return v&(1<<bit) != 0, nil
}

// WriteBit sets or clears bit (0..=7) in the byte at addr.
func (b *Binary) WriteBit(addr Address, bit uint8, set bool) error {
	if bit > 7 {
		return fmt.Errorf("%w: %d (expected 0..=7)", ErrInvalidBitIndex, bit)
	}
	v, err := b.ReadU8(addr)
	if err != nil {
		return err
	}
	mask := uint8(1) << bit
	if set {
		v |= mask
	} else {
		v &^= mask
	}
	return b.WriteU8(addr, v)
}

// ReadIndexedBit treats the bytes starting at base as a flat bit array and
// reads bit bitIndex of it.
func (b *Binary) ReadIndexedBit(base Address, bitIndex int) (bool, error) {
	return b.ReadBit(base+Address(bitIndex/8), uint8(bitIndex%8))
}

// WriteIndexedBit treats the bytes starting at base as a flat bit array and
// sets or clears bit bitIndex of it.
func (b *Binary) WriteIndexedBit(base Address, bitIndex int, set bool) error {
	return b.WriteBit(base+Address(bitIndex/8), uint8(bitIndex%8), set)
}
