package core

import (
	"slices"
	"testing"
)

func newTestScaler() (*Scaler, *fakeSurface, *recorder) {
	rec := &recorder{}
	surf := &fakeSurface{rec: rec}
	return NewScaler(&fakeUI{rec: rec}, surf, quietLogger()), surf, rec
}

func TestRecomputeFormula(t *testing.T) {
	tests := []struct {
		name     string
		window   Size
		pixels   Size
		ui       float32
		dpi      Vec2
		portrait bool
	}{
		{"reference", Size{1280, 720}, Size{1280, 720}, 1, Vec2{1, 1}, false},
		{"full hd", Size{1920, 1080}, Size{1920, 1080}, 1.5, Vec2{1, 1}, false},
		{"portrait", Size{640, 960}, Size{640, 960}, 0.75, Vec2{1, 1}, true},
		{"hidpi", Size{1280, 720}, Size{2560, 1440}, 1, Vec2{2, 2}, false},
		{"square", Size{800, 800}, Size{1600, 800}, 0.625, Vec2{2, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, _, _ := newTestScaler()
			st := sc.Recompute(tt.window, tt.pixels)
			if st.UIScale != tt.ui {
				t.Errorf("UIScale = %v, want %v", st.UIScale, tt.ui)
			}
			if st.FontScale() != tt.ui/2 {
				t.Errorf("FontScale() = %v, want %v", st.FontScale(), tt.ui/2)
			}
			if st.DPIScale != tt.dpi || st.AppliedScale != tt.dpi {
				t.Errorf("DPIScale = %v AppliedScale = %v, want %v", st.DPIScale, st.AppliedScale, tt.dpi)
			}
			if st.Portrait != tt.portrait {
				t.Errorf("Portrait = %v, want %v", st.Portrait, tt.portrait)
			}
		})
	}
}

func TestRecomputeAppliesStyleFromBaseline(t *testing.T) {
	sc, _, rec := newTestScaler()
	sc.changed.subscribe(func(ScaleState) { rec.add("notify") })

	sc.Recompute(Size{1920, 1080}, Size{1920, 1080})

	want := []string{
		"ui.RestoreStyle",
		"ui.ScaleAllSizes 1.5",
		"ui.SetFontGlobalScale 0.75",
		"surface.SetScale 1 1",
		"notify",
		"surface.Clear",
	}
	if !slices.Equal(rec.calls, want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	sc, _, rec := newTestScaler()
	notified := 0
	sc.changed.subscribe(func(ScaleState) { notified++ })

	first := sc.Recompute(Size{1920, 1080}, Size{3840, 2160})
	rec.reset()
	second := sc.Recompute(Size{1920, 1080}, Size{3840, 2160})

	if first != second {
		t.Fatalf("second Recompute() = %+v, want %+v", second, first)
	}
	if notified != 1 {
		t.Fatalf("notified %d times, want 1", notified)
	}
	if got := rec.filter("ui."); len(got) != 0 {
		t.Fatalf("style touched on identical recompute: %v", got)
	}
	if got := rec.filter("surface.Clear"); len(got) != 0 {
		t.Fatalf("surface cleared on identical recompute")
	}
}

func TestRecomputeDensityChangeOnly(t *testing.T) {
	sc, _, rec := newTestScaler()
	notified := 0
	sc.changed.subscribe(func(ScaleState) { notified++ })

	sc.Recompute(Size{1280, 720}, Size{1280, 720})
	rec.reset()
	// Same logical size moved to a denser display.
	st := sc.Recompute(Size{1280, 720}, Size{2560, 1440})

	if st.DPIScale != (Vec2{2, 2}) {
		t.Fatalf("DPIScale = %v, want {2 2}", st.DPIScale)
	}
	want := []string{"surface.SetScale 2 2"}
	if !slices.Equal(rec.calls, want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	if notified != 1 {
		t.Fatalf("notified %d times, want 1", notified)
	}
}

func TestRecomputeScaleRejected(t *testing.T) {
	sc, surf, _ := newTestScaler()
	sc.Recompute(Size{1280, 720}, Size{1280, 720})

	surf.scaleErr = errNoScale
	st := sc.Recompute(Size{1280, 720}, Size{2560, 1440})

	if st.DPIScale != (Vec2{2, 2}) {
		t.Fatalf("DPIScale = %v, want {2 2}", st.DPIScale)
	}
	if st.AppliedScale != (Vec2{1, 1}) {
		t.Fatalf("AppliedScale = %v, want previous {1 1}", st.AppliedScale)
	}
	if st.ScaleApplied() {
		t.Fatalf("ScaleApplied() = true after rejected SetScale")
	}
	if got := st.LogicalSize(); got != (Vec2{2560, 1440}) {
		t.Fatalf("LogicalSize() = %v, want the pixel size at scale 1", got)
	}

	surf.scaleErr = nil
	st = sc.Recompute(Size{1280, 720}, Size{2560, 1440})
	if got := st.LogicalSize(); got != (Vec2{1280, 720}) {
		t.Fatalf("LogicalSize() = %v, want the window size", got)
	}
	if got := (ScaleState{WindowSize: Size{800, 600}}).LogicalSize(); got != (Vec2{800, 600}) {
		t.Fatalf("LogicalSize() before any scale = %v, want the window size", got)
	}
}

func TestRecomputeZeroWindow(t *testing.T) {
	sc, _, _ := newTestScaler()
	sc.Recompute(Size{1280, 720}, Size{2560, 1440})

	st := sc.Recompute(Size{0, 0}, Size{0, 0})
	if st.DPIScale != (Vec2{2, 2}) {
		t.Fatalf("DPIScale = %v, want previous {2 2}", st.DPIScale)
	}
	if st.UIScale != 0 {
		t.Fatalf("UIScale = %v, want 0", st.UIScale)
	}
}
