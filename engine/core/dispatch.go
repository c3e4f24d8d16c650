package core

// FrameState summarises what one drain of the native queue did.
type FrameState struct {
	Quit              bool
	Resized           bool
	FullscreenToggled bool
	Back              bool
	// Routed counts events handed to the UI bridge through either pointer
	// injection or ProcessEvent.
	Routed int
}

// Dispatcher classifies native events once per frame. Each event takes
// exactly one path; the first matching rule wins.
type Dispatcher struct {
	shell *Shell
	keys  Bindings
}

func NewDispatcher(s *Shell, b Bindings) *Dispatcher {
	return &Dispatcher{shell: s, keys: b}
}

// Drain empties the surface queue without blocking. After a quit request the
// rest of the queue is consumed but not routed.
func (d *Dispatcher) Drain() FrameState {
	var fs FrameState
	for {
		ev, ok := d.shell.Surface.PollEvent()
		if !ok {
			return fs
		}
		if fs.Quit {
			continue
		}
		d.route(ev, &fs)
	}
}

func (d *Dispatcher) route(ev Event, fs *FrameState) {
	s := d.shell

	switch e := ev.(type) {
	case EventQuit, EventWindowClose:
		fs.Quit = true
		return
	case EventKey:
		if e.Down && d.keys.isExit(e.Key) {
			fs.Quit = true
			return
		}
	case EventWindowResized:
		// The payload can lag behind; ask the surface for both sizes.
		s.Scaler.Recompute(s.Surface.WindowSize(), s.Surface.PixelSize())
		fs.Resized = true
		return
	}

	// Held shell keys are consumed but act only on the first press.
	if e, ok := ev.(EventKey); ok && e.Down {
		switch {
		case e.Key == d.keys.Fullscreen && e.Key != KeyUnknown:
			if e.Repeat {
				return
			}
			if err := s.SetFullscreen(!s.fullscreen); err != nil {
				s.Log.Warn("Fullscreen toggle failed", "err", err)
				return
			}
			fs.FullscreenToggled = true
			return
		case d.keys.isBack(e.Key):
			if !e.Repeat {
				s.Views.BackPressed()
				fs.Back = true
			}
			return
		}
	}

	if e, ok := ev.(EventMouseMove); ok {
		sc := s.Scaler.State().AppliedScale
		s.UI.AddMousePos(e.X/sc.X, e.Y/sc.Y)
		fs.Routed++
		return
	}

	s.UI.ProcessEvent(ev)
	fs.Routed++
}
