package core

import "charm.land/log/v2"

// ReferenceDimension is the longest window side at which the UI scale is 1.
const ReferenceDimension = 1280

// ScaleState is the current mapping between logical and physical units.
type ScaleState struct {
	WindowSize Size
	PixelSize  Size
	// UIScale multiplies style sizes; FontScale is UIScale/2 because fonts
	// are rasterised at twice the reference size.
	UIScale float32
	// DPIScale is the wanted pixel/window ratio per axis.
	DPIScale Vec2
	// AppliedScale is the ratio the surface last accepted.
	AppliedScale Vec2
	Portrait     bool
}

// ScaleApplied reports whether the surface accepted the wanted DPI scale.
func (st ScaleState) ScaleApplied() bool { return st.DPIScale == st.AppliedScale }

// LogicalSize is the drawable size in the units the render projection spans.
// It equals WindowSize unless the surface refused the wanted DPI scale.
func (st ScaleState) LogicalSize() Vec2 {
	if st.AppliedScale.X <= 0 || st.AppliedScale.Y <= 0 {
		return Vec2{float32(st.WindowSize.W), float32(st.WindowSize.H)}
	}
	return Vec2{
		X: float32(st.PixelSize.W) / st.AppliedScale.X,
		Y: float32(st.PixelSize.H) / st.AppliedScale.Y,
	}
}

// FontScale is the font global scale derived from UIScale.
func (st ScaleState) FontScale() float32 { return st.UIScale / 2 }

// StyleScaler is the part of the UI layer the scaler drives.
type StyleScaler interface {
	RestoreStyle()
	ScaleAllSizes(scale float32)
	SetFontGlobalScale(scale float32)
}

// RenderScaler is the part of the surface the scaler drives.
type RenderScaler interface {
	SetScale(sx, sy float32) error
	Clear()
}

// Scaler keeps UI style, fonts and the render transform consistent with the
// current window and pixel sizes.
type Scaler struct {
	style  StyleScaler
	render RenderScaler
	log    *log.Logger

	state   ScaleState
	changed signal[ScaleState]
}

func NewScaler(style StyleScaler, render RenderScaler, logger *log.Logger) *Scaler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scaler{
		style:  style,
		render: render,
		log:    logger,
		state:  ScaleState{DPIScale: Vec2{1, 1}, AppliedScale: Vec2{1, 1}},
	}
}

func (sc *Scaler) State() ScaleState { return sc.state }

// Recompute derives the scale state from the given sizes. Calling it twice
// with the same sizes leaves style, fonts and render scale unchanged and
// notifies nobody the second time.
func (sc *Scaler) Recompute(window, pixels Size) ScaleState {
	prev := sc.state
	st := prev
	st.WindowSize = window
	st.PixelSize = pixels
	st.Portrait = window.H > window.W

	st.UIScale = float32(max(window.W, window.H)) / ReferenceDimension
	if st.UIScale != prev.UIScale {
		sc.style.RestoreStyle()
		sc.style.ScaleAllSizes(st.UIScale)
		sc.style.SetFontGlobalScale(st.FontScale())
	}

	// A minimised window reports zero; keep the last ratio.
	if window.W > 0 && window.H > 0 {
		st.DPIScale = Vec2{
			X: float32(pixels.W) / float32(window.W),
			Y: float32(pixels.H) / float32(window.H),
		}
	}
	if err := sc.render.SetScale(st.DPIScale.X, st.DPIScale.Y); err != nil {
		sc.log.Warn("render scale not applied", "wanted", st.DPIScale, "err", err)
	} else {
		st.AppliedScale = st.DPIScale
	}

	sc.state = st
	if window != prev.WindowSize {
		sc.log.Debug("resolution changed", "window", window, "pixels", pixels, "ui", st.UIScale)
		sc.changed.fire(st)
		sc.render.Clear()
	}
	return st
}
