package symdb

import "errors"

var (
	// ErrSymbolNotFound is returned when a requested symbol is absent.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrDecompression is returned when a compressed symbol payload cannot
	// be decoded. Parse errors never occur; malformed lines are skipped.
	ErrDecompression = errors.New("symbol file decompression failed")
	// ErrNotInRegion is returned when a symbol's raw address is outside the
	// memory window an operation expects.
	ErrNotInRegion = errors.New("symbol is not in expected region")
	// ErrSymbolBeforeBase is returned when a relative-offset calculation
	// would go backwards.
	ErrSymbolBeforeBase = errors.New("symbol before base symbol")
)
