// Package remap implements in-place transformation algorithms for save data
// whose encoding changed between versions: bitset copies driven by an index
// mapping, and byte-list rewrites driven by a value mapping. All three are
// pure algorithms; the caller supplies the mapping and fallback functions.
package remap

import "github.com/vulcandth/gb-save-patcher/pkg/save"

// MapBitset copies set bits from a source bitset into a destination bitset
// through an index mapping. mapIndex returns the destination index for a
// source index, or ok=false when there is none. Source bits with no mapping,
// or whose mapped index is >= dstBits, are reported via onUnmapped and set
// no destination bit. Unset source bits are never mapped.
func MapBitset(
	src *save.Binary, srcBase save.Address, srcBits int,
	dst *save.Binary, dstBase save.Address, dstBits int,
	mapIndex func(int) (int, bool),
	onUnmapped func(int),
) error {
	for i := 0; i < srcBits; i++ {
		set, err := src.ReadIndexedBit(srcBase, i)
		if err != nil {
			return err
		}
		if !set {
			continue
		}

		di, ok := mapIndex(i)
		if !ok || di >= dstBits {
			onUnmapped(i)
			continue
		}
		if err := dst.WriteIndexedBit(dstBase, di, true); err != nil {
			return err
		}
	}
	return nil
}

// ZeroTerminated remaps a zero-terminated list of byte values in place.
// Scanning stops at the first zero byte, or after maxLen bytes. Values with
// no mapping are reported via onInvalid and left untouched; the scan
// continues past them. A mapped value is written only when it differs.
func ZeroTerminated(
	b *save.Binary, base save.Address, maxLen int,
	mapValue func(uint8) (uint8, bool),
	onInvalid func(index int, value uint8),
) error {
	for i := 0; i < maxLen; i++ {
		addr := base + save.Address(i)
		v, err := b.ReadU8(addr)
		if err != nil {
			return err
		}
		if v == 0 {
			break
		}

		mapped, ok := mapValue(v)
		if !ok {
			onInvalid(i, v)
			continue
		}
		if mapped != v {
			if err := b.WriteU8(addr, mapped); err != nil {
				return err
			}
		}
	}
	return nil
}

// FixedLenSkipZero remaps exactly length byte values in place. Zero bytes
// are always left untouched. Values with no mapping are replaced by whatever
// onInvalid returns, which may equal the original.
func FixedLenSkipZero(
	b *save.Binary, base save.Address, length int,
	mapValue func(uint8) (uint8, bool),
	onInvalid func(index int, value uint8) uint8,
) error {
	for i := 0; i < length; i++ {
		addr := base + save.Address(i)
		v, err := b.ReadU8(addr)
		if err != nil {
			return err
		}
		if v == 0 {
			continue
		}

		mapped, ok := mapValue(v)
		if !ok {
			mapped = onInvalid(i, v)
		}
		if mapped != v {
			if err := b.WriteU8(addr, mapped); err != nil {
				return err
			}
		}
	}
	return nil
}
