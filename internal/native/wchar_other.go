//go:build !windows

package native

// Wchar is the C wchar_t code unit: UTF-32 outside Windows.
type Wchar = uint32

const WcharSize = 4
