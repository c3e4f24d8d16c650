// Package profiler records nested timing scopes and writes them in the
// speedscope evented format.
package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var ErrNoEvents = errors.New("profiler: no events recorded")

// Recorder keeps the most recent scope events in a ring. A nil Recorder is
// valid and records nothing.
type Recorder struct {
	ring evRing
	now  func() time.Time

	mu     sync.Mutex
	names  []string
	byName map[string]int
}

// New returns a recorder that keeps the last capacity open/close events.
func New(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	r := &Recorder{now: time.Now, byName: make(map[string]int)}
	r.ring.init(capacity)
	return r
}

var noop = func() {}

// Start opens a scope and returns the func that closes it.
func (r *Recorder) Start(name string) func() {
	if r == nil {
		return noop
	}
	id := r.intern(name)
	start := r.now().UnixNano()
	r.ring.push(evEntry{AtNS: start, FrameID: id, Open: true})
	return func() {
		end := max(r.now().UnixNano(), start)
		r.ring.push(evEntry{AtNS: end, FrameID: id})
	}
}

func (r *Recorder) intern(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := len(r.names)
	r.byName[name] = id
	r.names = append(r.names, name)
	return id
}

// WriteFile writes the capture to path, replacing it atomically.
func (r *Recorder) WriteFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if err := r.WriteSpeedscope(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return os.Rename(tmp, path)
}

// WriteSpeedscope encodes the capture as a speedscope JSON document.
func (r *Recorder) WriteSpeedscope(w io.Writer) error {
	if r == nil {
		return ErrNoEvents
	}
	evs := r.ring.snapshot()
	out, endUS := balance(evs)
	if len(out) == 0 {
		return ErrNoEvents
	}

	r.mu.Lock()
	frames := make([]ssFrame, len(r.names))
	for i, n := range r.names {
		frames[i] = ssFrame{Name: n}
	}
	r.mu.Unlock()

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "frame loop",
			Unit:     "microseconds",
			EndValue: endUS,
			Events:   out,
		}},
		Exporter: "dvrclient",
		Name:     "dvrclient capture",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// balance converts raw events to microsecond offsets, drops closes that
// do not match the innermost open scope and closes what is left open.
func balance(evs []evEntry) (out []ssEvent, endUS int64) {
	if len(evs) == 0 {
		return nil, 0
	}
	base := evs[0].AtNS
	out = make([]ssEvent, 0, len(evs)+8)
	stack := make([]int, 0, 32)
	lastUS := int64(0)

	for _, e := range evs {
		atUS := max((e.AtNS-base)/1000, lastUS)
		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.FrameID})
			stack = append(stack, e.FrameID)
		} else {
			// Lost its open to ring wrap-around, or mismatched.
			if len(stack) == 0 || stack[len(stack)-1] != e.FrameID {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.FrameID})
		}
		lastUS = atUS
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	return out, lastUS
}

type evEntry struct {
	AtNS    int64
	FrameID int
	Open    bool
}

type evRing struct {
	cap   uint64
	write atomic.Uint64
	evs   []evEntry
}

func (r *evRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]evEntry, r.cap)
}

func (r *evRing) push(e evEntry) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot returns the retained events in write order.
func (r *evRing) snapshot() []evEntry {
	n := r.write.Load()
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]evEntry, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}
