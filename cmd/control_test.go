package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/uniwin/internal/controller"
	"github.com/bnema/uniwin/internal/ipc"
)

func TestControlHandlerToggles(t *testing.T) {
	c := controller.New(nil, controller.DefaultOptions())
	h := controlHandler(c)

	resp := h.Handle(ipc.Request{Command: ipc.CommandTopmost})
	require.True(t, resp.OK)
	assert.Equal(t, true, resp.Fields["topmost"])
	assert.True(t, c.Window().Topmost())

	resp = h.Handle(ipc.Request{Command: ipc.CommandTopmost, Args: []string{"off"}})
	require.True(t, resp.OK)
	assert.False(t, c.Window().Topmost())

	resp = h.Handle(ipc.Request{Command: ipc.CommandBorderless, Args: []string{"true"}})
	require.True(t, resp.OK)
	assert.True(t, c.Window().Borderless())

	resp = h.Handle(ipc.Request{Command: ipc.CommandClickThrough, Args: []string{"maybe"}})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "clickthrough")
}

func TestControlHandlerAlpha(t *testing.T) {
	c := controller.New(nil, controller.DefaultOptions())
	h := controlHandler(c)

	resp := h.Handle(ipc.Request{Command: ipc.CommandAlpha, Args: []string{"0.25"}})
	require.True(t, resp.OK)
	assert.InDelta(t, 0.25, resp.Fields["alpha"], 1e-6)

	resp = h.Handle(ipc.Request{Command: ipc.CommandAlpha, Args: []string{"3"}})
	require.True(t, resp.OK)
	assert.InDelta(t, 1.0, resp.Fields["alpha"], 1e-6)

	for _, args := range [][]string{nil, {"half"}} {
		resp = h.Handle(ipc.Request{Command: ipc.CommandAlpha, Args: args})
		assert.False(t, resp.OK, "args %v", args)
	}
}

func TestControlHandlerFitWhileDetached(t *testing.T) {
	c := controller.New(nil, controller.DefaultOptions())
	h := controlHandler(c)

	resp := h.Handle(ipc.Request{Command: ipc.CommandFit, Args: []string{"1"}})
	assert.False(t, resp.OK)
	assert.Equal(t, controller.FitAborted.String(), resp.Fields["outcome"])
	assert.NotEmpty(t, resp.Error)

	resp = h.Handle(ipc.Request{Command: ipc.CommandFit, Args: []string{"x"}})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "invalid monitor index")
}

func TestControlHandlerStatusAndUnknown(t *testing.T) {
	c := controller.New(nil, controller.DefaultOptions())
	h := controlHandler(c)

	resp := h.Handle(ipc.Request{Command: ipc.CommandStatus})
	require.True(t, resp.OK)
	assert.Equal(t, "detached", resp.Fields["status"])
	assert.Equal(t, false, resp.Fields["active"])
	assert.Equal(t, 0, resp.Fields["monitors"])

	resp = h.Handle(ipc.Request{Command: "reboot"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, `unknown command "reboot"`)
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"off", false, false},
		{"true", true, false},
		{"0", false, false},
		{"sure", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSwitch(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
