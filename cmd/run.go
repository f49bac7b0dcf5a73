package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/config"
	"github.com/bnema/uniwin/internal/controller"
	"github.com/bnema/uniwin/internal/events"
	"github.com/bnema/uniwin/internal/ipc"
	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/ui"
)

var (
	runHeadless   bool
	runAlpha      float32
	runHitRegions []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Attach to the host window and drive the event loop",
	Long: `Attach to the host window, apply the configured state and drain window
events once per tick. Without --headless a live view shows status and events.`,
	RunE: runRun,
}

func init() {
	flags := runCmd.Flags()
	flags.BoolVar(&runHeadless, "headless", false, "Log events instead of showing the live view")
	flags.Bool("topmost", false, "Keep the window above others")
	flags.Bool("bottommost", false, "Keep the window below others")
	flags.Bool("transparent", false, "Make the window background transparent")
	flags.Bool("borderless", false, "Remove the window frame")
	flags.Bool("clickthrough", false, "Let mouse input pass through the window")
	flags.Bool("drop", false, "Accept dropped files")
	flags.Float32Var(&runAlpha, "alpha", 1, "Window opacity between 0 and 1")
	flags.StringArrayVar(&runHitRegions, "hit-region", nil,
		`Window-local "x,y,w,h" area that catches input; elsewhere clicks pass through (repeatable)`)
	rootCmd.AddCommand(runCmd)
}

// applyRunFlags overrides configured window state with explicitly set flags.
func applyRunFlags(cmd *cobra.Command, c *controller.Controller) {
	w := c.Window()
	flags := cmd.Flags()

	toggles := []struct {
		name string
		set  func(bool)
	}{
		{"topmost", w.SetTopmost},
		{"bottommost", w.SetBottommost},
		{"transparent", w.SetTransparent},
		{"borderless", w.SetBorderless},
		{"clickthrough", w.SetClickThrough},
		{"drop", w.SetAllowDropFiles},
	}
	for _, t := range toggles {
		if !flags.Changed(t.name) {
			continue
		}
		v, _ := flags.GetBool(t.name)
		t.set(v)
	}
	if flags.Changed("alpha") {
		w.SetAlpha(runAlpha)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	probe, err := hitProbe(runHitRegions)
	if err != nil {
		return err
	}

	c := newController()
	defer closeController(c)

	applyRunFlags(cmd, c)
	if probe != nil {
		c.Window().SetHitTestEnabled(true)
	}

	if !c.Attach() {
		return fmt.Errorf("could not attach to the host window (status %s)", c.Status())
	}

	serve, stopControl := startControl(c)
	defer stopControl()

	if runHeadless {
		onTick := serve
		if probe != nil {
			onTick = func() {
				serve()
				c.UpdateHitTest(probe)
			}
		}
		return runHeadlessLoop(cmd.Context(), c, tickInterval(), onTick)
	}

	log := ui.NewEventLog(200)
	unsubscribe := c.Subscribe(log)
	defer unsubscribe()
	log.Add("INFO", "attached")

	session := servingSession{Controller: c, serve: serve}
	p := tea.NewProgram(ui.NewWatchModel(session, log, probe, tickInterval()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("live view: %w", err)
	}
	return nil
}

// hitProbe builds a region probe from "x,y,w,h" specs. No specs means no
// probe, which leaves click-through alone.
func hitProbe(specs []string) (controller.HitProbe, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	p := controller.RegionProbe{}
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid hit region %q: want x,y,w,h", spec)
		}
		var v [4]float32
		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
			if err != nil {
				return nil, fmt.Errorf("invalid hit region %q: %w", spec, err)
			}
			v[i] = float32(f)
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, fmt.Errorf("invalid hit region %q: width and height must be positive", spec)
		}
		p.Regions = append(p.Regions, controller.Region{X: v[0], Y: v[1], Width: v[2], Height: v[3]})
	}
	return p, nil
}

// servingSession answers pending control requests before each drain so they
// run on the UI tick.
type servingSession struct {
	*controller.Controller
	serve func()
}

func (s servingSession) Drain() int {
	s.serve()
	return s.Controller.Drain()
}

// startControl starts the control socket when enabled. It returns the
// per-tick serve hook and a stop function.
func startControl(c *controller.Controller) (serve, stop func()) {
	noop := func() {}
	cfg := config.Get()
	if !cfg.Host.Control {
		return noop, noop
	}

	srv, err := ipc.NewSocketServer(cfg.Host.ControlSocket)
	if err == nil {
		err = srv.Start()
	}
	if err != nil {
		logger.Warn("Control socket unavailable", "error", err)
		return noop, noop
	}

	handler := controlHandler(c)
	return func() { srv.Serve(handler) }, srv.Stop
}

// runHeadlessLoop drains once per tick until interrupted or the window goes
// away. onTick runs before each drain.
func runHeadlessLoop(ctx context.Context, c *controller.Controller, tick time.Duration, onTick func()) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	unsubscribe := c.Subscribe(controller.ObserverFunc(func(e events.Event) {
		logger.Info("Window event", "kind", e.Kind(), "event", e)
	}))
	defer unsubscribe()

	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	logger.Info("Running headless", "tick", tick)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case <-ticker.C:
			if onTick != nil {
				onTick()
			}
			c.Drain()
			if !c.IsActive() {
				logger.Warn("Host window is no longer active")
				return nil
			}
		}
	}
}
