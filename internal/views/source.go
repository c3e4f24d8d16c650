package views

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/remotedisplay/shell/engine/assets"
)

// Frame is one RGBA8 picture, rows top to bottom. Seq increases with every
// produced frame.
type Frame struct {
	Seq    uint64
	W, H   int
	Pixels []byte
}

type SourceOptions struct {
	Width, Height int
	FPS           int
	// TestCard, if set, is a PNG drawn under the moving marker instead of
	// the color bars.
	TestCard string
}

// StubSource produces test-pattern frames on a background goroutine. The
// render thread reads the latest one with Latest.
type StubSource struct {
	opt  SourceOptions
	base []byte

	mu     sync.Mutex
	latest Frame

	cancel   context.CancelFunc
	done     chan struct{}
	start    sync.Once
	stop     sync.Once
	produced uint64
}

func NewStubSource(opt SourceOptions) (*StubSource, error) {
	if opt.FPS <= 0 {
		opt.FPS = 30
	}
	s := &StubSource{opt: opt, done: make(chan struct{})}
	if opt.TestCard != "" {
		w, h, px, err := assets.LoadPNG(opt.TestCard)
		if err != nil {
			return nil, fmt.Errorf("test card: %w", err)
		}
		s.opt.Width, s.opt.Height, s.base = w, h, px
	}
	if s.opt.Width <= 0 || s.opt.Height <= 0 {
		return nil, fmt.Errorf("source size %dx%d must be positive", s.opt.Width, s.opt.Height)
	}
	if s.base == nil {
		s.base = colorBars(s.opt.Width, s.opt.Height)
	}
	return s, nil
}

// Start launches the producer. Later calls do nothing.
func (s *StubSource) Start() {
	s.start.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go s.run(ctx)
	})
}

// Stop halts the producer and waits for it. It is safe on a source that was
// never started and may be called more than once.
func (s *StubSource) Stop() {
	s.stop.Do(func() {
		s.start.Do(func() {}) // a later Start must not launch
		if s.cancel != nil {
			s.cancel()
			<-s.done
		}
	})
}

// Latest returns the newest frame; ok is false until the first one exists.
// The pixels must not be modified.
func (s *StubSource) Latest() (f Frame, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.latest.Seq > 0
}

func (s *StubSource) run(ctx context.Context) {
	defer close(s.done)
	lim := rate.NewLimiter(rate.Limit(s.opt.FPS), 1)
	for {
		if err := lim.Wait(ctx); err != nil {
			return
		}
		s.produced++
		f := Frame{
			Seq:    s.produced,
			W:      s.opt.Width,
			H:      s.opt.Height,
			Pixels: s.render(s.produced),
		}
		s.mu.Lock()
		s.latest = f
		s.mu.Unlock()
	}
}

// render draws the base picture with a white bar sweeping left to right.
// A fresh buffer is used for every frame so readers never see a partial one.
func (s *StubSource) render(seq uint64) []byte {
	w, h := s.opt.Width, s.opt.Height
	px := make([]byte, len(s.base))
	copy(px, s.base)

	barW := max(1, w/32)
	x0 := int(seq*uint64(barW)) % w
	x1 := min(x0+barW, w)
	for y := 0; y < h; y++ {
		row := px[(y*w+x0)*4 : (y*w+x1)*4]
		for i := range row {
			row[i] = 0xff
		}
	}
	return px
}

// colorBars fills w*h RGBA pixels with the classic seven vertical bars.
func colorBars(w, h int) []byte {
	bars := [...][3]byte{
		{0xc0, 0xc0, 0xc0},
		{0xc0, 0xc0, 0x00},
		{0x00, 0xc0, 0xc0},
		{0x00, 0xc0, 0x00},
		{0xc0, 0x00, 0xc0},
		{0xc0, 0x00, 0x00},
		{0x00, 0x00, 0xc0},
	}
	px := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bars[x*len(bars)/w]
			i := (y*w + x) * 4
			px[i], px[i+1], px[i+2], px[i+3] = c[0], c[1], c[2], 0xff
		}
	}
	return px
}
