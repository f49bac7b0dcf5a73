//go:build windows

package native

// Wchar is the C wchar_t code unit: UTF-16 on Windows.
type Wchar = uint16

const WcharSize = 2
