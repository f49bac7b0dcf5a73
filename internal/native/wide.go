package native

import (
	"fmt"
	"unsafe"

	"golang.org/x/text/transform"
)

// maxWideLen bounds the terminator scan on a native string.
const maxWideLen = 1 << 20

// WideString copies the NUL-terminated native wide string at p and decodes
// it to UTF-8. A nil pointer yields "".
func WideString(p *Wchar) (string, error) {
	if p == nil {
		return "", nil
	}
	n := 0
	for ptr := unsafe.Pointer(p); *(*Wchar)(ptr) != 0; ptr = unsafe.Add(ptr, WcharSize) {
		n++
		if n >= maxWideLen {
			return "", fmt.Errorf("wide string exceeds %d units without terminator", maxWideLen)
		}
	}
	return DecodeWide(unsafe.Slice(p, n))
}

// DecodeWide converts platform wchar_t units to UTF-8. Invalid sequences are
// replaced with U+FFFD.
func DecodeWide(units []Wchar) (string, error) {
	if len(units) == 0 {
		return "", nil
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&units[0])), len(units)*WcharSize)
	out, _, err := transform.Bytes(wideEncoding.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decoding wide string: %w", err)
	}
	return string(out), nil
}

// EncodeWide converts s to NUL-terminated platform wchar_t units.
func EncodeWide(s string) ([]Wchar, error) {
	raw, _, err := transform.Bytes(wideEncoding.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding wide string: %w", err)
	}
	units := make([]Wchar, len(raw)/WcharSize+1)
	if len(raw) > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&units[0])), len(raw)), raw)
	}
	return units, nil
}
