package native

// Library is an opened shared object that can resolve exported symbols.
type Library interface {
	// Lookup returns the address of an exported symbol, or an error when the
	// symbol is not exported.
	Lookup(name string) (uintptr, error)
	Close() error
}
