//go:build windows

package native

import "golang.org/x/text/encoding/unicode"

var wideEncoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
