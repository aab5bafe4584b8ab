package wm

import (
	"errors"
	"strconv"
	"testing"
)

var (
	desktop = Viewport{Width: 1280, Height: 800, Chrome: 60}
	mobile  = Viewport{Width: 390, Height: 844, Chrome: 78}
)

func newTestManager(opts ...Option) *Manager {
	n := 0
	opts = append([]Option{
		WithIDGenerator(func() string {
			n++
			return "w" + strconv.Itoa(n)
		}),
		WithRandom(func() float64 { return 0.5 }),
	}, opts...)
	return New(opts...)
}

// openAt opens a window and moves it to an exact geometry.
func openAt(t *testing.T, m *Manager, vp Viewport, p Point, s Size) Window {
	t.Helper()

	w := m.Open(OpenRequest{Title: "test", Size: s}, vp)
	w, err := m.Move(w.ID, p, vp)
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if w.Position != p || w.Size != s {
		t.Fatalf("openAt: got %+v %+v, want %+v %+v", w.Position, w.Size, p, s)
	}
	return w
}

func assertContained(t *testing.T, m *Manager, w Window, vp Viewport) {
	t.Helper()

	area := vp.WorkArea()
	if w.Position.X < 0 || w.Position.Y < 0 {
		t.Fatalf("window %s has negative position %+v", w.ID, w.Position)
	}
	if w.Position.X+w.Size.Width > area.Width || w.Position.Y+w.Size.Height > area.Height {
		t.Fatalf("window %s at %+v %+v escapes work area %+v", w.ID, w.Position, w.Size, area)
	}
	if w.Size.Width < m.Limits().MinWidth || w.Size.Height < m.Limits().MinHeight {
		t.Fatalf("window %s is below the minimum size: %+v", w.ID, w.Size)
	}
}

func TestOpen_FirstWindowOnDesktop(t *testing.T) {
	m := newTestManager()

	w := m.Open(OpenRequest{Title: "Calculator", Icon: "🧮", Content: "CalculatorApp", Size: Size{Width: 210, Height: 280}}, desktop)

	if w.ID != "w1" {
		t.Fatalf("expected id w1, got %q", w.ID)
	}
	if w.ZIndex != 101 {
		t.Fatalf("expected zIndex 101, got %d", w.ZIndex)
	}
	if w.IsMaximized || w.IsMinimized {
		t.Fatalf("expected a normal window, got %+v", w)
	}
	if w.Content != "CalculatorApp" {
		t.Fatalf("content changed: %q", w.Content)
	}
	// Centered in the 1280x740 work area.
	if w.Position != (Point{X: 535, Y: 230}) {
		t.Fatalf("expected centered position, got %+v", w.Position)
	}
}

func TestOpen_ZIndexAboveExisting(t *testing.T) {
	m := newTestManager()

	w1 := m.Open(OpenRequest{Title: "a", Size: Size{Width: 300, Height: 200}}, desktop)
	w2 := m.Open(OpenRequest{Title: "b", Size: Size{Width: 300, Height: 200}}, desktop)

	if w2.ZIndex != w1.ZIndex+1 {
		t.Fatalf("expected %d, got %d", w1.ZIndex+1, w2.ZIndex)
	}
}

func TestOpen_UniqueIDs(t *testing.T) {
	m := New(WithIDGenerator(func() string { return "same" }))

	seen := map[string]bool{}
	for range 5 {
		w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
		if seen[w.ID] {
			t.Fatalf("duplicate id %q", w.ID)
		}
		seen[w.ID] = true
	}
}

func TestOpen_DefaultIDsAreUnique(t *testing.T) {
	m := New()

	seen := map[string]bool{}
	for range 50 {
		w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
		if seen[w.ID] {
			t.Fatalf("duplicate id %q", w.ID)
		}
		seen[w.ID] = true
	}
}

func TestOpen_MobileIsMaximizedFromBirth(t *testing.T) {
	m := newTestManager()

	w := m.Open(OpenRequest{Title: "Calculator", Size: Size{Width: 210, Height: 280}}, mobile)

	if !w.IsMaximized {
		t.Fatal("expected window to be maximized")
	}
	if w.Position != (Point{}) || w.Size != (Size{Width: 390, Height: 766}) {
		t.Fatalf("expected full work area, got %+v %+v", w.Position, w.Size)
	}
	if w.PreviousPosition == nil || w.PreviousSize == nil {
		t.Fatal("expected previous geometry to be set")
	}

	w, err := m.MaximizeToggle(w.ID, mobile)
	if err != nil {
		t.Fatalf("MaximizeToggle() error: %v", err)
	}
	if w.Size != (Size{Width: 210, Height: 280}) || w.Position != (Point{X: 90, Y: 243}) {
		t.Fatalf("expected requested size centered, got %+v %+v", w.Position, w.Size)
	}
}

func TestOpen_MobileByHint(t *testing.T) {
	m := newTestManager()

	vp := desktop
	vp.Mobile = true
	w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, vp)
	if !w.IsMaximized {
		t.Fatal("expected mobile hint to maximize")
	}
}

func TestOpen_Scatter(t *testing.T) {
	m := newTestManager()

	w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}, Placement: PlacementScatter}, desktop)
	// x = 0.5*(1280-300-100)+50, y = 0.5*(800-200-150)+80
	if w.Position != (Point{X: 490, Y: 305}) {
		t.Fatalf("unexpected scattered position %+v", w.Position)
	}

	m = newTestManager(WithRandom(func() float64 { return 0.999 }))
	w = m.Open(OpenRequest{Size: Size{Width: 1200, Height: 700}, Placement: PlacementScatter}, desktop)
	assertContained(t, m, w, desktop)
}

func TestOpen_ClampsRequestedSize(t *testing.T) {
	m := newTestManager()

	w := m.Open(OpenRequest{Size: Size{Width: -10, Height: 5000}}, desktop)
	if w.Size != (Size{Width: 200, Height: 740}) {
		t.Fatalf("unexpected size %+v", w.Size)
	}
	assertContained(t, m, w, desktop)
}

func TestClose(t *testing.T) {
	m := newTestManager()

	before := m.List()
	w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	if err := m.Close(w.ID); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if m.Len() != len(before) {
		t.Fatalf("expected %d windows, got %d", len(before), m.Len())
	}
}

func TestClose_Twice(t *testing.T) {
	m := newTestManager()

	w1 := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)

	if err := m.Close(w1.ID); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := m.Close(w1.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", m.Len())
	}
}

func TestNotFound(t *testing.T) {
	m := newTestManager()

	if _, err := m.Minimize("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Minimize: expected ErrNotFound, got %v", err)
	}
	if _, err := m.MaximizeToggle("nope", desktop); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MaximizeToggle: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Move("nope", Point{}, desktop); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Move: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Resize("nope", Size{}, desktop); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resize: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Focus("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Focus: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
}

func TestMinimize_TwiceKeepsGeometry(t *testing.T) {
	m := newTestManager()

	w := openAt(t, m, desktop, Point{X: 10, Y: 20}, Size{Width: 300, Height: 200})

	min1, err := m.Minimize(w.ID)
	if err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}
	if !min1.IsMinimized || min1.Visible() {
		t.Fatal("expected window to be minimized")
	}

	min2, err := m.Minimize(w.ID)
	if err != nil {
		t.Fatalf("Minimize() error: %v", err)
	}
	if min2.IsMinimized {
		t.Fatal("expected window to be restored")
	}
	if min2.Position != w.Position || min2.Size != w.Size || min2.ZIndex != w.ZIndex {
		t.Fatalf("geometry changed: before %+v after %+v", w, min2)
	}
}

func TestMinimize_TopmostStaysLogicallyTopmost(t *testing.T) {
	m := newTestManager()

	w1 := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	w2 := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)

	if _, err := m.Minimize(w2.ID); err != nil {
		t.Fatal(err)
	}
	if top, _ := m.Topmost(); top != w2.ID {
		t.Fatalf("expected %s topmost, got %s", w2.ID, top)
	}

	if _, err := m.Focus(w1.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Minimize(w2.ID); err != nil {
		t.Fatal(err)
	}
	if top, _ := m.Topmost(); top != w1.ID {
		t.Fatalf("expected %s topmost after restore without focus, got %s", w1.ID, top)
	}

	stack := m.Stack()
	if len(stack) != 2 || stack[1].ID != w1.ID {
		t.Fatalf("unexpected stack %+v", stack)
	}
}

func TestMaximizeToggle_RoundTrip(t *testing.T) {
	m := newTestManager()
	vp := Viewport{Width: 1000, Height: 700, Chrome: 60}

	w := openAt(t, m, vp, Point{X: 50, Y: 50}, Size{Width: 300, Height: 200})

	maxed, err := m.MaximizeToggle(w.ID, vp)
	if err != nil {
		t.Fatalf("MaximizeToggle() error: %v", err)
	}
	if !maxed.IsMaximized {
		t.Fatal("expected maximized")
	}
	if maxed.Position != (Point{}) || maxed.Size != (Size{Width: 1000, Height: 640}) {
		t.Fatalf("unexpected maximized geometry %+v %+v", maxed.Position, maxed.Size)
	}
	if *maxed.PreviousPosition != (Point{X: 50, Y: 50}) || *maxed.PreviousSize != (Size{Width: 300, Height: 200}) {
		t.Fatalf("unexpected previous geometry %+v %+v", *maxed.PreviousPosition, *maxed.PreviousSize)
	}
	if maxed.ZIndex != w.ZIndex {
		t.Fatalf("zIndex changed from %d to %d", w.ZIndex, maxed.ZIndex)
	}

	restored, err := m.MaximizeToggle(w.ID, vp)
	if err != nil {
		t.Fatalf("MaximizeToggle() error: %v", err)
	}
	if restored.IsMaximized {
		t.Fatal("expected restored")
	}
	if restored.Position != w.Position || restored.Size != w.Size {
		t.Fatalf("expected %+v %+v, got %+v %+v", w.Position, w.Size, restored.Position, restored.Size)
	}
}

func TestMoveResize_NoOpWhenMaximized(t *testing.T) {
	m := newTestManager()

	w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	maxed, _ := m.MaximizeToggle(w.ID, desktop)

	moved, err := m.Move(w.ID, Point{X: 10, Y: 10}, desktop)
	if err != nil {
		t.Fatal(err)
	}
	resized, err := m.Resize(w.ID, Size{Width: 400, Height: 400}, desktop)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Position != maxed.Position || resized.Size != maxed.Size {
		t.Fatalf("maximized geometry changed: %+v %+v", moved, resized)
	}
}

func TestMove_ClampsToViewport(t *testing.T) {
	m := newTestManager()

	w := openAt(t, m, desktop, Point{X: 100, Y: 100}, Size{Width: 200, Height: 150})

	w, err := m.Move(w.ID, Point{X: 1200, Y: 100}, desktop)
	if err != nil {
		t.Fatal(err)
	}
	if w.Position != (Point{X: 1080, Y: 100}) {
		t.Fatalf("expected {1080 100}, got %+v", w.Position)
	}
}

func TestMoveResize_AlwaysContained(t *testing.T) {
	m := newTestManager()
	w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)

	targets := []int{-5000, -1, 0, 1, 59, 640, 739, 740, 741, 1279, 1280, 99999}
	for _, x := range targets {
		for _, y := range targets {
			moved, err := m.Move(w.ID, Point{X: x, Y: y}, desktop)
			if err != nil {
				t.Fatal(err)
			}
			assertContained(t, m, moved, desktop)

			resized, err := m.Resize(w.ID, Size{Width: x, Height: y}, desktop)
			if err != nil {
				t.Fatal(err)
			}
			assertContained(t, m, resized, desktop)
		}
	}
}

func TestResize(t *testing.T) {
	m := newTestManager()

	w := openAt(t, m, desktop, Point{X: 1000, Y: 500}, Size{Width: 250, Height: 200})

	w, err := m.Resize(w.ID, Size{Width: 800, Height: 800}, desktop)
	if err != nil {
		t.Fatal(err)
	}
	if w.Size != (Size{Width: 280, Height: 240}) {
		t.Fatalf("expected {280 240}, got %+v", w.Size)
	}

	w, err = m.Resize(w.ID, Size{Width: 10, Height: 10}, desktop)
	if err != nil {
		t.Fatal(err)
	}
	if w.Size != (Size{Width: 200, Height: 140}) {
		t.Fatalf("expected minimum size, got %+v", w.Size)
	}
}

func TestFocus(t *testing.T) {
	m := newTestManager()

	w1 := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	w2 := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)

	f1, err := m.Focus(w1.ID)
	if err != nil {
		t.Fatal(err)
	}
	w2, _ = m.Get(w2.ID)
	if f1.ZIndex <= w2.ZIndex {
		t.Fatalf("expected %d > %d", f1.ZIndex, w2.ZIndex)
	}

	// Already on top still advances.
	f2, _ := m.Focus(w1.ID)
	if f2.ZIndex != f1.ZIndex+1 {
		t.Fatalf("expected %d, got %d", f1.ZIndex+1, f2.ZIndex)
	}
}

func TestReclamp(t *testing.T) {
	m := newTestManager()

	w1 := openAt(t, m, desktop, Point{X: 900, Y: 500}, Size{Width: 300, Height: 200})
	w2 := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	if _, err := m.MaximizeToggle(w2.ID, desktop); err != nil {
		t.Fatal(err)
	}

	small := Viewport{Width: 1000, Height: 600, Chrome: 60}
	changed := m.Reclamp(small)
	if len(changed) != 2 {
		t.Fatalf("expected 2 changed windows, got %d", len(changed))
	}

	w1, _ = m.Get(w1.ID)
	assertContained(t, m, w1, small)
	if w1.Position != (Point{X: 700, Y: 340}) {
		t.Fatalf("unexpected position %+v", w1.Position)
	}

	w2, _ = m.Get(w2.ID)
	if w2.Size != (Size{Width: 1000, Height: 540}) {
		t.Fatalf("expected maximized window to refill, got %+v", w2.Size)
	}
	if w2.PreviousSize == nil || *w2.PreviousSize != (Size{Width: 300, Height: 200}) {
		t.Fatalf("expected saved geometry to survive, got %+v", w2.PreviousSize)
	}
}

func TestTile(t *testing.T) {
	m := newTestManager()

	for range 3 {
		m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	}
	hidden := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	if _, err := m.Minimize(hidden.ID); err != nil {
		t.Fatal(err)
	}

	tiled := m.Tile(desktop)
	if len(tiled) != 3 {
		t.Fatalf("expected 3 tiled windows, got %d", len(tiled))
	}

	want := []Point{{X: 0, Y: 0}, {X: 640, Y: 0}, {X: 0, Y: 370}}
	for i, w := range tiled {
		assertContained(t, m, w, desktop)
		if w.Position != want[i] || w.Size != (Size{Width: 640, Height: 370}) {
			t.Fatalf("window %d: got %+v %+v", i, w.Position, w.Size)
		}
	}

	hidden, _ = m.Get(hidden.ID)
	if hidden.Size != (Size{Width: 300, Height: 200}) {
		t.Fatal("minimized window should not be tiled")
	}
}

func TestTile_Empty(t *testing.T) {
	if tiled := newTestManager().Tile(desktop); len(tiled) != 0 {
		t.Fatalf("expected nothing tiled, got %d", len(tiled))
	}
}

func TestList_ReturnsCopies(t *testing.T) {
	m := newTestManager()

	w := m.Open(OpenRequest{Size: Size{Width: 300, Height: 200}}, desktop)
	m.MaximizeToggle(w.ID, desktop)

	list := m.List()
	list[0].PreviousPosition.X = 999
	list[0].Title = "changed"

	got, _ := m.Get(w.ID)
	if got.PreviousPosition.X == 999 || got.Title == "changed" {
		t.Fatal("List() leaked internal state")
	}
}
