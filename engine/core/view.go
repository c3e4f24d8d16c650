package core

import "errors"

// View is one navigable screen. Views are compared by identity, so
// implementations should be pointer types.
type View interface {
	// UsesImmediateModeUI reports whether Draw runs inside a UI frame.
	UsesImmediateModeUI() bool

	// EnterForeground runs every time the view becomes active, including
	// re-activation after the view above it is popped.
	EnterForeground()
	// LeaveForeground runs when another view is pushed on top.
	LeaveForeground()
	// Destroy runs exactly once, on pop, replace or final drain. It must be
	// safe to call on a view that never became visible.
	Destroy()

	BackPressed()
	Draw()
	// RawDraw runs every frame, UI frame or not.
	RawDraw()
}

var (
	ErrNilView      = errors.New("core: nil view")
	ErrNoActiveView = errors.New("core: no active view")
	ErrViewResident = errors.New("core: view is already active or stacked")
)

type navKind uint8

const (
	navPush navKind = iota
	navPop
	navReplace
)

type navOp struct {
	kind navKind
	view View
}

// ViewStack holds the suspended views and the single active one.
//
// Navigation requested while one of the stack's hooks is running is queued
// and applied in order once the outermost hook returns, so a view never sees
// a call after Destroy and never gets destroyed mid-hook.
type ViewStack struct {
	list    []View
	active  View
	busy    int
	pending []navOp
}

func NewViewStack() *ViewStack { return &ViewStack{} }

// Active returns the active view, or nil once the stack is exhausted.
func (vs *ViewStack) Active() View { return vs.active }

// Depth is the number of suspended views below the active one.
func (vs *ViewStack) Depth() int { return len(vs.list) }

// Push suspends the active view (if any) and activates v.
func (vs *ViewStack) Push(v View) {
	if v == nil {
		panic(ErrNilView)
	}
	vs.request(navOp{kind: navPush, view: v})
}

// Pop destroys the active view and re-activates the one below it. With an
// empty stack the active view becomes nil, which ends the frame loop.
func (vs *ViewStack) Pop() {
	vs.request(navOp{kind: navPop})
}

// Replace destroys the active view without stacking it and activates v.
func (vs *ViewStack) Replace(v View) {
	if v == nil {
		panic(ErrNilView)
	}
	vs.request(navOp{kind: navReplace, view: v})
}

// Drain pops until no view is resident, so every remaining view gets its
// Destroy exactly once.
func (vs *ViewStack) Drain() {
	for vs.active != nil {
		vs.Pop()
	}
}

// BackPressed, Draw and RawDraw forward to the active view.
func (vs *ViewStack) BackPressed() { vs.dispatch(View.BackPressed) }
func (vs *ViewStack) Draw()        { vs.dispatch(View.Draw) }
func (vs *ViewStack) RawDraw()     { vs.dispatch(View.RawDraw) }

func (vs *ViewStack) dispatch(hook func(View)) {
	v := vs.active
	if v == nil {
		return
	}
	vs.run(func() { hook(v) })
}

func (vs *ViewStack) request(op navOp) {
	if vs.busy > 0 {
		vs.pending = append(vs.pending, op)
		return
	}
	vs.run(func() { vs.apply(op) })
}

func (vs *ViewStack) run(fn func()) {
	vs.busy++
	fn()
	vs.busy--
	if vs.busy > 0 {
		return
	}
	for len(vs.pending) > 0 {
		op := vs.pending[0]
		vs.pending = vs.pending[1:]
		vs.busy++
		vs.apply(op)
		vs.busy--
	}
}

func (vs *ViewStack) apply(op navOp) {
	switch op.kind {
	case navPush:
		vs.mustNotBeResident(op.view)
		if vs.active != nil {
			prev := vs.active
			prev.LeaveForeground()
			vs.list = append(vs.list, prev)
		}
		vs.active = op.view
		op.view.EnterForeground()

	case navPop:
		if vs.active == nil {
			panic(ErrNoActiveView)
		}
		gone := vs.active
		vs.active = nil
		gone.Destroy()
		if n := len(vs.list); n > 0 {
			top := vs.list[n-1]
			vs.list[n-1] = nil
			vs.list = vs.list[:n-1]
			vs.active = top
			top.EnterForeground()
		}

	case navReplace:
		vs.mustNotBeResident(op.view)
		if vs.active != nil {
			gone := vs.active
			vs.active = nil
			gone.Destroy()
		}
		vs.active = op.view
		op.view.EnterForeground()
	}
}

func (vs *ViewStack) mustNotBeResident(v View) {
	if v == vs.active {
		panic(ErrViewResident)
	}
	for _, s := range vs.list {
		if s == v {
			panic(ErrViewResident)
		}
	}
}
