package native

import "errors"

var (
	// ErrLoadFailure is returned when no library could be opened or a required
	// symbol is missing. Nothing of the library is usable after it.
	ErrLoadFailure = errors.New("native library load failed")

	// ErrRequiredSymbol marks the missing core symbol inside a load failure.
	ErrRequiredSymbol = errors.New("required symbol not found")

	// ErrNotLoaded is returned by operations that need a loaded library.
	ErrNotLoaded = errors.New("native library not loaded")
)
