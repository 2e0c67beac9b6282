package save

import "fmt"

// Checksum computes the additive checksum of the bytes in r: every byte is
// summed into a uint16 accumulator with wraparound. This matches the common
// "sum of bytes" scheme used by cartridge saves.
func Checksum(b *Binary, r AddressRange) (uint16, error) {
	if r.Start >= r.End {
		return 0, fmt.Errorf("%w: %s", ErrInvalidAddressRange, r)
	}
	data, err := b.Slice(r)
	if err != nil {
		return 0, err
	}
	var sum uint16
	for _, v := range data {
		sum += uint16(v)
	}
	return sum, nil
}
