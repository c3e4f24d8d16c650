package core

import (
	"context"
	"runtime"
	"time"
)

// Run executes the frame loop until the view stack is exhausted, a quit
// request arrives or ctx is done, then shuts down. Push the first view before
// calling Run; with no active view Run only performs the shutdown.
func (s *Shell) Run(ctx context.Context) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s.Log.Info("Initialized renderer", "renderer", s.Surface.RendererInfo())

	s.UI.BackupStyle()
	s.Scaler.Recompute(s.Surface.WindowSize(), s.Surface.PixelSize())

	frames := 0
	for s.Views.Active() != nil {
		if s.Frame(ctx).Quit {
			break
		}
		frames++
	}

	s.shutdown()
	s.Log.Info("Shell exit", "frames", frames, "uptime", s.Uptime().Round(time.Millisecond))
	return nil
}

// Frame runs one iteration: drain events, compose, present. A returned Quit
// means nothing was drawn and the caller should stop.
func (s *Shell) Frame(ctx context.Context) FrameState {
	defer s.Prof.Start("Frame")()

	end := s.Prof.Start("Drain")
	fs := s.dispatcher.Drain()
	end()
	if ctx.Err() != nil || s.exitRequest {
		fs.Quit = true
	}
	if fs.Quit {
		return fs
	}

	v := s.Views.Active()
	if v == nil {
		// Back from the root view emptied the stack during the drain.
		return fs
	}

	ui := v.UsesImmediateModeUI()
	if ui {
		end = s.Prof.Start("Draw")
		s.UI.NewFrame()
		s.Views.Draw()
		if s.cfg.DebugOverlay {
			s.UI.DebugOverlay(DebugInfo{
				FPS:          s.UI.Framerate(),
				Scale:        s.Scaler.State(),
				StackDepth:   s.Views.Depth(),
				RendererInfo: s.Surface.RendererInfo(),
			})
		}
		s.UI.EndFrame()
		end()
	}

	// Draw may have popped the last view.
	if s.Views.Active() != nil {
		end = s.Prof.Start("RawDraw")
		s.Views.RawDraw()
		end()
	}

	if ui {
		end = s.Prof.Start("RenderDrawData")
		s.UI.RenderDrawData()
		end()
	}
	end = s.Prof.Start("Present")
	s.Surface.Present()
	end()
	return fs
}

// shutdown releases everything in dependency order. It runs at most once.
func (s *Shell) shutdown() {
	if s.exitFired {
		return
	}
	s.exitFired = true

	s.Views.Drain()
	s.exit.fire(struct{}{})
	s.UI.Shutdown()
	s.Surface.Destroy()
}
