package save

import "errors"

var (
	// ErrSaveTooSmall is returned when a buffer is shorter than an
	// operation's minimum size.
	ErrSaveTooSmall = errors.New("save buffer too small")
	// ErrAddressOutOfBounds is returned when an address falls outside the buffer.
	ErrAddressOutOfBounds = errors.New("address out of bounds")
	// ErrRangeOutOfBounds is returned when an address range falls outside the buffer.
	ErrRangeOutOfBounds = errors.New("range out of bounds")
	// ErrInvalidBitIndex is returned for bit indices outside 0..=7.
	ErrInvalidBitIndex = errors.New("invalid bit index")
	// ErrInvalidAddressRange is returned for malformed ranges (start >= end).
	ErrInvalidAddressRange = errors.New("invalid address range")
	// ErrSizeMismatch is returned when a fixed-size access saw a different byte length.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrChecksumMismatch is returned when a stored checksum does not match
	// the value computed from the save data.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)
