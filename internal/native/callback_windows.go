//go:build windows

package native

// unsupportedSymbols lists exports whose callbacks Windows cannot build:
// syscall.NewCallback rejects float arguments, so these slots stay nil and
// the facade reads position and size through the getters instead.
var unsupportedSymbols = map[string]string{
	"RegisterWindowMovedCallback":   "float callback arguments",
	"RegisterWindowResizedCallback": "float callback arguments",
}
