// Command dvrclient is the remote display client shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"charm.land/log/v2"

	"github.com/remotedisplay/shell/engine/assets"
	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/gfx"
	"github.com/remotedisplay/shell/engine/gfx/renderer2d"
	"github.com/remotedisplay/shell/engine/platform"
	"github.com/remotedisplay/shell/engine/platform/desktop"
	"github.com/remotedisplay/shell/engine/profiler"
	"github.com/remotedisplay/shell/engine/text"
	"github.com/remotedisplay/shell/engine/ui"
	"github.com/remotedisplay/shell/internal/config"
	"github.com/remotedisplay/shell/internal/logging"
	"github.com/remotedisplay/shell/internal/views"
)

func init() {
	// GLFW and the GL context live on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		log.Error("dvrclient failed", "err", err)
		os.Exit(1)
	}
}

// target is the opened surface with what the renderers need from it.
type target struct {
	surface core.Surface
	dev     gfx.Device
	proj    func() [16]float32
}

func openTarget(cfg config.Config, logger *log.Logger) (target, error) {
	if cfg.Headless {
		s := platform.NewHeadlessSurface(platform.HeadlessOptions{
			Window:    core.Size{W: cfg.Window.Width, H: cfg.Window.Height},
			MaxFrames: cfg.Frames,
		})
		return target{surface: s, dev: s.Device, proj: s.Projection}, nil
	}
	s, err := desktop.NewGLFWSurface(desktop.WindowOptions{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		VSync:     cfg.Render.VSync,
		MaxFrames: cfg.Frames,
		Log:       logger.With("component", "window"),
	})
	if err != nil {
		return target{}, err
	}
	return target{surface: s, dev: s.Device(), proj: s.Projection}, nil
}

func loadFonts(c *ui.Context, dev gfx.Device) error {
	sizes := ui.RasterSizes()
	faces := []struct {
		id   ui.FontID
		name string
		ttf  []byte
	}{
		{ui.FontText, "Go Regular", assets.MainFont},
		{ui.FontH1, "Go Bold", assets.HeadingFont},
		{ui.FontH2, "Go Bold", assets.HeadingFont},
	}
	for _, f := range faces {
		font, err := text.LoadFont(dev, f.name, f.ttf, sizes[f.id])
		if err != nil {
			return fmt.Errorf("font atlas: %w", err)
		}
		c.SetFont(f.id, font)
	}
	return nil
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	shellCfg, err := cfg.Shell()
	if err != nil {
		return err
	}
	filter, err := gfx.ParseScaleQuality(cfg.Render.ScaleQuality)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tg, err := openTarget(cfg, logger)
	if err != nil {
		return err
	}
	r2d, err := renderer2d.New(tg.dev, assets.QuadVertexShader, assets.QuadFragmentShader, 10000)
	if err != nil {
		tg.surface.Destroy()
		return fmt.Errorf("quad renderer: %w", err)
	}
	uiCtx := ui.NewContext()
	if err := loadFonts(uiCtx, tg.dev); err != nil {
		uiCtx.Shutdown()
		tg.surface.Destroy()
		return err
	}

	// The UI lays out in the same logical units the projection spans.
	var shell *core.Shell
	display := func() ui.Vec2 {
		ls := shell.Scale().LogicalSize()
		return ui.Vec2{X: ls.X, Y: ls.Y}
	}
	bridge := ui.NewBridge(uiCtx, ui.NewRenderer2D(r2d, tg.proj), display, logger.With("component", "ui"))
	shell = core.NewShell(tg.surface, bridge, shellCfg, logger)
	if cfg.Profile != "" {
		shell.Prof = profiler.New(1 << 18)
	}
	if cfg.Window.Fullscreen {
		if err := shell.SetFullscreen(true); err != nil {
			logger.Warn("Starting windowed", "err", err)
		}
	}

	host := views.NewHost(shell, uiCtx, views.Raw{R2D: r2d, Projection: tg.proj}, logger.With("component", "views"))
	shell.Push(views.NewMainMenu(host, views.PlayerOptions{
		Source: views.SourceOptions{
			Width:    cfg.Source.Width,
			Height:   cfg.Source.Height,
			FPS:      cfg.Source.FPS,
			TestCard: cfg.Source.TestCard,
		},
		Filter: filter,
	}))

	if err := shell.Run(ctx); err != nil {
		return err
	}
	if cfg.Profile != "" {
		if err := shell.Prof.WriteFile(cfg.Profile); err != nil {
			logger.Warn("Profile not written", "err", err)
		} else {
			logger.Info("Profile written", "path", cfg.Profile)
		}
	}
	return nil
}
