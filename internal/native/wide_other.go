//go:build !windows

package native

import "golang.org/x/text/encoding/unicode/utf32"

var wideEncoding = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
