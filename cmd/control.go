package cmd

import (
	"strconv"

	"github.com/bnema/uniwin/internal/controller"
	"github.com/bnema/uniwin/internal/ipc"
	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/window"
)

// controlHandler maps control requests onto the session controller. It runs
// on the host tick, never on a socket goroutine.
func controlHandler(c *controller.Controller) ipc.Handler {
	return ipc.HandlerFunc(func(req ipc.Request) ipc.Response {
		w := c.Window()
		switch req.Command {
		case ipc.CommandStatus:
			return statusResponse(c)

		case ipc.CommandFit:
			index := w.MonitorToFit()
			if len(req.Args) > 0 {
				i, err := strconv.Atoi(req.Args[0])
				if err != nil {
					return ipc.ErrorResponse("invalid monitor index %q", req.Args[0])
				}
				index = i
			}
			res := c.FitToMonitor(index)
			resp := ipc.Response{
				OK: res.Outcome != controller.FitAborted,
				Fields: map[string]any{
					"outcome": res.Outcome.String(),
					"monitor": res.Monitor.Index,
				},
			}
			if res.Reason != "" {
				resp.Fields["reason"] = res.Reason
				if !resp.OK {
					resp.Error = res.Reason
				}
			}
			return resp

		case ipc.CommandTopmost:
			return toggle(req, w.Topmost, w.SetTopmost)
		case ipc.CommandBottommost:
			return toggle(req, w.Bottommost, w.SetBottommost)
		case ipc.CommandBorderless:
			return toggle(req, w.Borderless, w.SetBorderless)
		case ipc.CommandTransparent:
			return toggle(req, w.Transparent, w.SetTransparent)
		case ipc.CommandClickThrough:
			return toggle(req, w.ClickThrough, w.SetClickThrough)

		case ipc.CommandAlpha:
			if len(req.Args) != 1 {
				return ipc.ErrorResponse("alpha takes one value between 0 and 1")
			}
			v, err := strconv.ParseFloat(req.Args[0], 32)
			if err != nil {
				return ipc.ErrorResponse("invalid alpha %q", req.Args[0])
			}
			w.SetAlpha(float32(v))
			return ipc.Response{OK: true, Fields: map[string]any{"alpha": float64(w.Alpha())}}

		case ipc.CommandDetach:
			c.Detach()
			logger.Info("Detached by control request")
			return ipc.Response{OK: true, Fields: map[string]any{"status": c.Status().String()}}

		default:
			return ipc.ErrorResponse("unknown command %q", req.Command)
		}
	})
}

// toggle sets a boolean attribute from "on"/"off" style arguments, or flips
// it when no argument is given.
func toggle(req ipc.Request, get func() bool, set func(bool)) ipc.Response {
	v := !get()
	if len(req.Args) > 0 {
		parsed, err := parseSwitch(req.Args[0])
		if err != nil {
			return ipc.ErrorResponse("%s: %v", req.Command, err)
		}
		v = parsed
	}
	set(v)
	return ipc.Response{OK: true, Fields: map[string]any{req.Command: get()}}
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func statusResponse(c *controller.Controller) ipc.Response {
	w := c.Window()
	x, y := w.Position()
	width, height := w.Size()
	return ipc.Response{OK: true, Fields: map[string]any{
		"status":       c.Status().String(),
		"active":       c.IsActive(),
		"monitors":     w.MonitorCount(),
		"monitor":      w.CurrentMonitor(),
		"x":            float64(x),
		"y":            float64(y),
		"width":        float64(width),
		"height":       float64(height),
		"topmost":      w.Topmost(),
		"bottommost":   w.Bottommost(),
		"borderless":   w.Borderless(),
		"transparent":  w.Transparent(),
		"clickthrough": w.ClickThrough(),
		"alpha":        float64(w.Alpha()),
		"hit_test":     hitTestName(w),
	}}
}

func hitTestName(w *window.Facade) string {
	if !w.HitTestEnabled() {
		return "disabled"
	}
	return w.HitTestType().String()
}
