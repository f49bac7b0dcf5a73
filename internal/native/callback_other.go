//go:build !windows

package native

// unsupportedSymbols lists exports the platform cannot bind.
var unsupportedSymbols = map[string]string{}
