package core

import (
	"errors"
	"slices"
	"testing"
)

func mustPanicWith(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", r, want)
		}
	}()
	fn()
}

func TestViewStackPushPop(t *testing.T) {
	rec := &recorder{}
	vs := NewViewStack()
	a := &fakeView{name: "a", rec: rec}
	b := &fakeView{name: "b", rec: rec}

	vs.Push(a)
	vs.Push(b)
	if vs.Active() != b || vs.Depth() != 1 {
		t.Fatalf("after two pushes Active()=%v Depth()=%d, want b and 1", vs.Active(), vs.Depth())
	}
	vs.Pop()
	if vs.Active() != a || vs.Depth() != 0 {
		t.Fatalf("after pop Active()=%v Depth()=%d, want a and 0", vs.Active(), vs.Depth())
	}
	vs.Pop()
	if vs.Active() != nil {
		t.Fatalf("Active() = %v, want nil", vs.Active())
	}

	want := []string{"a.Enter", "a.Leave", "b.Enter", "b.Destroy", "a.Enter", "a.Destroy"}
	if !slices.Equal(rec.calls, want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
}

func TestViewStackReplace(t *testing.T) {
	rec := &recorder{}
	vs := NewViewStack()
	a := &fakeView{name: "a", rec: rec}
	b := &fakeView{name: "b", rec: rec}
	c := &fakeView{name: "c", rec: rec}

	// Nothing to destroy yet.
	vs.Replace(a)
	vs.Push(b)
	vs.Replace(c)
	if vs.Active() != c || vs.Depth() != 1 {
		t.Fatalf("Active()=%v Depth()=%d, want c and 1", vs.Active(), vs.Depth())
	}
	vs.Pop()

	want := []string{"a.Enter", "a.Leave", "b.Enter", "b.Destroy", "c.Enter", "c.Destroy", "a.Enter"}
	if !slices.Equal(rec.calls, want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
}

func TestViewStackBalance(t *testing.T) {
	rec := &recorder{}
	vs := NewViewStack()
	views := make([]*fakeView, 6)
	for i := range views {
		views[i] = &fakeView{name: string(rune('a' + i)), rec: rec}
	}

	// push push pop push replace push pop pop
	vs.Push(views[0])
	vs.Push(views[1])
	vs.Pop()
	vs.Push(views[2])
	vs.Replace(views[3])
	vs.Push(views[4])
	vs.Pop()
	vs.Pop()

	if vs.Depth() != 0 || vs.Active() != views[0] {
		t.Fatalf("Depth()=%d Active()=%v, want 0 and a", vs.Depth(), vs.Active())
	}
	for _, v := range views[1:5] {
		if v.destroyed != 1 {
			t.Errorf("%s destroyed %d times, want 1", v.name, v.destroyed)
		}
	}
	if views[0].destroyed != 0 || views[5].destroyed != 0 {
		t.Errorf("untouched views destroyed: a=%d f=%d", views[0].destroyed, views[5].destroyed)
	}
}

func TestViewStackDrain(t *testing.T) {
	rec := &recorder{}
	vs := NewViewStack()
	for _, n := range []string{"a", "b", "c"} {
		vs.Push(&fakeView{name: n, rec: rec})
	}
	rec.reset()

	vs.Drain()

	got := rec.filter("a.Destroy", "b.Destroy", "c.Destroy")
	want := []string{"c.Destroy", "b.Destroy", "a.Destroy"}
	if !slices.Equal(got, want) {
		t.Fatalf("destroy order = %v, want %v", got, want)
	}
	if vs.Active() != nil || vs.Depth() != 0 {
		t.Fatalf("stack not empty after Drain")
	}
}

func TestViewStackMisuse(t *testing.T) {
	rec := &recorder{}

	t.Run("pop empty", func(t *testing.T) {
		mustPanicWith(t, ErrNoActiveView, func() { NewViewStack().Pop() })
	})
	t.Run("push nil", func(t *testing.T) {
		mustPanicWith(t, ErrNilView, func() { NewViewStack().Push(nil) })
	})
	t.Run("replace nil", func(t *testing.T) {
		mustPanicWith(t, ErrNilView, func() { NewViewStack().Replace(nil) })
	})
	t.Run("push resident", func(t *testing.T) {
		vs := NewViewStack()
		a := &fakeView{name: "a", rec: rec}
		vs.Push(a)
		vs.Push(&fakeView{name: "b", rec: rec})
		mustPanicWith(t, ErrViewResident, func() { vs.Push(a) })
	})
	t.Run("replace with active", func(t *testing.T) {
		vs := NewViewStack()
		a := &fakeView{name: "a", rec: rec}
		vs.Push(a)
		mustPanicWith(t, ErrViewResident, func() { vs.Replace(a) })
	})
}

func TestViewStackNavigationFromHook(t *testing.T) {
	rec := &recorder{}
	vs := NewViewStack()
	a := &fakeView{name: "a", rec: rec}
	b := &fakeView{name: "b", rec: rec}
	c := &fakeView{name: "c", rec: rec}

	b.onBack = func() {
		vs.Pop()
		// Still inside b's hook: nothing applied yet.
		if vs.Active() != b {
			t.Errorf("pop applied inside hook")
		}
		rec.add("b.Back.return")
	}
	a.onDraw = func() { vs.Replace(c) }

	vs.Push(a)
	vs.Push(b)
	rec.reset()

	vs.BackPressed()
	vs.Draw()

	want := []string{"b.Back", "b.Back.return", "b.Destroy", "a.Enter", "a.Draw", "a.Destroy", "c.Enter"}
	if !slices.Equal(rec.calls, want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	if b.destroyed != 1 {
		t.Fatalf("b destroyed %d times, want 1", b.destroyed)
	}
}

func TestViewStackDispatchEmpty(t *testing.T) {
	vs := NewViewStack()
	// No active view: dispatch is a no-op, not a panic.
	vs.BackPressed()
	vs.Draw()
	vs.RawDraw()
}
