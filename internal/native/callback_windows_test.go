//go:build windows

package native

import (
	"testing"

	"github.com/ebitengine/purego"
	"github.com/stretchr/testify/assert"
)

func TestTrampolines_BuildNativeCallbacks(t *testing.T) {
	for name, fn := range trampolines() {
		if _, skip := unsupportedSymbols[name]; skip {
			continue
		}
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.NotZero(t, purego.NewCallback(fn))
			})
		})
	}
}
