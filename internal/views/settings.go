package views

import "github.com/remotedisplay/shell/engine/core"

// Settings toggles the diagnostic overlay and fullscreen mode.
type Settings struct {
	host Host

	overlay    bool
	fullscreen bool
	portrait   bool
	widthFrac  float32
	unsub      func()
}

var _ core.View = (*Settings)(nil)

func NewSettings(host Host) *Settings {
	s := &Settings{host: host}
	s.layout(host.Scale())
	s.unsub = host.OnResolutionChanged(s.layout)
	return s
}

// layout picks a wider window in portrait, where the display is narrow.
func (s *Settings) layout(st core.ScaleState) {
	s.portrait = st.Portrait
	s.widthFrac = 0.4
	if st.Portrait {
		s.widthFrac = 0.8
	}
}

func (s *Settings) UsesImmediateModeUI() bool { return true }

func (s *Settings) EnterForeground() {
	s.overlay = s.host.DebugOverlay()
	s.fullscreen = s.host.IsFullscreen()
}

func (s *Settings) LeaveForeground() {}

func (s *Settings) Destroy() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Settings) BackPressed() { s.host.Pop() }
func (s *Settings) RawDraw()     {}

func (s *Settings) Draw() {
	c := s.host.UI()
	centerNext(c, s.widthFrac)
	c.Begin("Settings", 0)
	if c.Checkbox("Diagnostic overlay", &s.overlay) {
		s.host.SetDebugOverlay(s.overlay)
	}
	if c.Checkbox("Fullscreen", &s.fullscreen) {
		if err := s.host.SetFullscreen(s.fullscreen); err != nil {
			s.host.Log().Warn("Fullscreen switch failed", "err", err)
			s.fullscreen = s.host.IsFullscreen()
		}
	}
	c.TextDisabled("F11 toggles fullscreen anywhere")
	if s.portrait {
		c.TextColored(c.Style.Colors.CheckMark, "Portrait layout")
	}
	c.Spacing()
	if c.Button("Back") {
		s.host.Pop()
	}
	c.End()
}
