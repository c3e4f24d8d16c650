package core

import (
	"errors"
	"slices"
	"testing"
)

func TestDispatchPointerIsStolen(t *testing.T) {
	s, surf, rec := newTestShell(DefaultConfig())
	surf.resize(1280, 720, 2560, 1440)
	s.dispatcher.Drain()
	rec.reset()

	surf.queue = append(surf.queue, EventMouseMove{X: 200, Y: 100}, EventChar{Rune: 'x'})
	fs := s.dispatcher.Drain()

	want := []string{"ui.AddMousePos 100 50", "ui.ProcessEvent core.EventChar"}
	if !slices.Equal(rec.calls, want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	if fs.Routed != 2 {
		t.Fatalf("Routed = %d, want 2", fs.Routed)
	}
}

func TestDispatchPointerUsesAppliedScale(t *testing.T) {
	s, surf, rec := newTestShell(DefaultConfig())
	surf.resize(1280, 720, 1280, 720)
	s.dispatcher.Drain()

	surf.scaleErr = errNoScale
	surf.resize(1280, 720, 2560, 1440)
	s.dispatcher.Drain()
	rec.reset()

	surf.queue = append(surf.queue, EventMouseMove{X: 200, Y: 100})
	s.dispatcher.Drain()

	if got := rec.filter("ui.AddMousePos"); !slices.Equal(got, []string{"ui.AddMousePos 200 100"}) {
		t.Fatalf("pointer = %v, want unscaled position", got)
	}
}

func TestDispatchQuit(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"os quit", EventQuit{}},
		{"window close", EventWindowClose{}},
		{"exit key", EventKey{Key: KeyEscape, Down: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, surf, rec := newTestShell(DefaultConfig())
			v := &fakeView{name: "v", rec: rec}
			s.Push(v)
			rec.reset()

			surf.queue = []Event{tt.ev, EventChar{Rune: 'a'}, EventKey{Key: KeyBack, Down: true}}
			fs := s.dispatcher.Drain()

			if !fs.Quit {
				t.Fatalf("Quit = false, want true")
			}
			if len(surf.queue) != 0 {
				t.Fatalf("%d events left in queue", len(surf.queue))
			}
			if len(rec.calls) != 0 {
				t.Fatalf("events routed after quit: %v", rec.calls)
			}
		})
	}
}

func TestDispatchBack(t *testing.T) {
	t.Run("platform back", func(t *testing.T) {
		s, surf, rec := newTestShell(DefaultConfig())
		s.Push(&fakeView{name: "v", rec: rec})
		rec.reset()

		surf.queue = []Event{EventKey{Key: KeyBack, Down: true}, EventKey{Key: KeyBack}}
		fs := s.dispatcher.Drain()

		want := []string{"v.Back", "ui.ProcessEvent core.EventKey"}
		if !slices.Equal(rec.calls, want) {
			t.Fatalf("calls = %v, want %v", rec.calls, want)
		}
		if !fs.Back || fs.Quit {
			t.Fatalf("FrameState = %+v, want Back only", fs)
		}
	})

	t.Run("escape without exit key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Bindings.Exit = KeyUnknown
		s, surf, rec := newTestShell(cfg)
		s.Push(&fakeView{name: "v", rec: rec})
		rec.reset()

		surf.queue = []Event{EventKey{Key: KeyEscape, Down: true}}
		fs := s.dispatcher.Drain()

		if fs.Quit || !fs.Back {
			t.Fatalf("FrameState = %+v, want Back only", fs)
		}
		if !slices.Equal(rec.calls, []string{"v.Back"}) {
			t.Fatalf("calls = %v, want [v.Back]", rec.calls)
		}
	})

	t.Run("held back key", func(t *testing.T) {
		s, surf, rec := newTestShell(DefaultConfig())
		s.Push(&fakeView{name: "v", rec: rec})
		rec.reset()

		surf.queue = []Event{
			EventKey{Key: KeyBack, Down: true},
			EventKey{Key: KeyBack, Down: true, Repeat: true},
			EventKey{Key: KeyBack, Down: true, Repeat: true},
		}
		s.dispatcher.Drain()

		if !slices.Equal(rec.calls, []string{"v.Back"}) {
			t.Fatalf("calls = %v, want [v.Back]", rec.calls)
		}
	})
}

func TestDispatchFullscreenToggle(t *testing.T) {
	s, surf, rec := newTestShell(DefaultConfig())

	surf.queue = []Event{
		EventKey{Key: KeyF11, Down: true},
		EventKey{Key: KeyF11, Down: true, Repeat: true},
		EventKey{Key: KeyF11},
	}
	s.dispatcher.Drain()
	if !s.IsFullscreen() {
		t.Fatalf("IsFullscreen() = false after F11")
	}

	surf.queue = []Event{EventKey{Key: KeyF11, Down: true}}
	s.dispatcher.Drain()
	if s.IsFullscreen() {
		t.Fatalf("IsFullscreen() = true after second F11")
	}

	got := rec.filter("surface.")
	want := []string{
		"surface.SetFullscreen true",
		"surface.ShowCursor false",
		"surface.SetFullscreen false",
		"surface.ShowCursor true",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("surface calls = %v, want %v", got, want)
	}
}

func TestDispatchFullscreenRepeatIsConsumed(t *testing.T) {
	s, surf, rec := newTestShell(DefaultConfig())

	surf.queue = []Event{EventKey{Key: KeyF11, Down: true, Repeat: true}}
	fs := s.dispatcher.Drain()

	if s.IsFullscreen() || fs.FullscreenToggled {
		t.Fatalf("repeat toggled fullscreen: %+v", fs)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("calls = %v, want none", rec.calls)
	}
}

func TestDispatchFullscreenFailureKeepsState(t *testing.T) {
	s, surf, rec := newTestShell(DefaultConfig())
	surf.fullErr = errors.New("no monitor")

	surf.queue = []Event{EventKey{Key: KeyF11, Down: true}}
	fs := s.dispatcher.Drain()

	if s.IsFullscreen() || fs.FullscreenToggled {
		t.Fatalf("IsFullscreen() = %v, FullscreenToggled = %v after refused switch", s.IsFullscreen(), fs.FullscreenToggled)
	}
	if got := rec.filter("surface."); !slices.Equal(got, []string{"surface.SetFullscreen true"}) {
		t.Fatalf("surface calls = %v, want cursor untouched", got)
	}
	if err := s.SetFullscreen(true); err == nil {
		t.Fatal("SetFullscreen() = nil, want surface error")
	}
}

func TestDispatchResizeQueriesSurface(t *testing.T) {
	s, surf, _ := newTestShell(DefaultConfig())
	surf.window = Size{1920, 1080}
	surf.pixels = Size{1920, 1080}
	// Stale payload; the surface's own sizes win.
	surf.queue = []Event{EventWindowResized{W: 10, H: 10}}

	fs := s.dispatcher.Drain()

	if !fs.Resized {
		t.Fatalf("Resized = false")
	}
	if got := s.Scale().WindowSize; got != (Size{1920, 1080}) {
		t.Fatalf("WindowSize = %v, want {1920 1080}", got)
	}
}
