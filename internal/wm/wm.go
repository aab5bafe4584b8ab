// Package wm keeps the collection of desktop windows and enforces their
// stacking order and geometry. Content is an opaque handle that the manager
// stores and returns unchanged.
package wm

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"

	"github.com/ItsNotGoodName/thriveremoteos/internal/mosaic"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("window not found")

type Option func(m *Manager)

func WithLimits(limits Limits) Option {
	return func(m *Manager) {
		m.limits = limits
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// WithRandom sets the source used for scattered placement. fn must return
// values in [0, 1).
func WithRandom(fn func() float64) Option {
	return func(m *Manager) {
		m.random = fn
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{
		limits: DefaultLimits,
		newID:  uuid.NewString,
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Manager is safe for concurrent use. Every operation runs to completion under
// a single lock.
type Manager struct {
	mu      sync.Mutex
	limits  Limits
	newID   func() string
	random  func() float64
	windows []Window
}

func (m *Manager) Limits() Limits {
	return m.limits
}

// Open creates a window and places it on top of every other window.
func (m *Manager) Open(req OpenRequest, vp Viewport) Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	area := vp.WorkArea()
	size := m.limits.clampSize(req.Size, area.Width, area.Height)

	w := Window{
		ID:      m.uniqueID(),
		Title:   req.Title,
		Icon:    req.Icon,
		Content: req.Content,
		Size:    size,
		ZIndex:  m.maxZ() + 1,
	}

	if m.limits.IsMobile(vp) {
		// Restoring a window born maximized falls back to the requested size
		// centered in the work area.
		w.Position = centered(size, area)
		w.savePrevious()
		w.Position = Point{}
		w.Size = m.limits.clampSize(area, area.Width, area.Height)
		w.IsMaximized = true
	} else {
		switch req.Placement {
		case PlacementScatter:
			w.Position = clampPosition(scattered(size, vp, m.random()), size, area)
		default:
			w.Position = centered(size, area)
		}
	}

	m.windows = append(m.windows, w)

	return w.clone()
}

// Close removes the window.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx == -1 {
		return ErrNotFound
	}

	m.windows = slices.Delete(m.windows, idx, idx+1)

	return nil
}

// Minimize toggles the minimized state. Geometry and stacking are untouched.
func (m *Manager) Minimize(id string) (Window, error) {
	return m.update(id, func(w *Window) {
		w.IsMinimized = !w.IsMinimized
	})
}

// MaximizeToggle fills the work area of vp or restores the geometry held
// before maximizing.
func (m *Manager) MaximizeToggle(id string, vp Viewport) (Window, error) {
	return m.update(id, func(w *Window) {
		area := vp.WorkArea()

		if !w.IsMaximized {
			w.savePrevious()
			w.Position = Point{}
			w.Size = m.limits.clampSize(area, area.Width, area.Height)
			w.IsMaximized = true
			return
		}

		position, size := w.Position, w.Size
		if w.PreviousPosition != nil {
			position = *w.PreviousPosition
		}
		if w.PreviousSize != nil {
			size = *w.PreviousSize
		}

		w.Size = m.limits.clampSize(size, area.Width, area.Height)
		w.Position = clampPosition(position, w.Size, area)
		w.PreviousPosition = nil
		w.PreviousSize = nil
		w.IsMaximized = false
	})
}

// Move clamps position so the window stays inside the work area. It does nothing
// to a maximized window.
func (m *Manager) Move(id string, position Point, vp Viewport) (Window, error) {
	return m.update(id, func(w *Window) {
		if w.IsMaximized {
			return
		}

		w.Position = clampPosition(position, w.Size, vp.WorkArea())
	})
}

// Resize clamps size to the minimums and to the space left of the window's
// position. It does nothing to a maximized window.
func (m *Manager) Resize(id string, size Size, vp Viewport) (Window, error) {
	return m.update(id, func(w *Window) {
		if w.IsMaximized {
			return
		}

		area := vp.WorkArea()
		w.Size = m.limits.clampSize(size, area.Width-w.Position.X, area.Height-w.Position.Y)
		// Only moves when the minimums forced the window past the edge.
		w.Position = clampPosition(w.Position, w.Size, area)
	})
}

// Focus raises the window above every other window. The stacking counter
// advances even when the window is already on top.
func (m *Manager) Focus(id string) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx == -1 {
		return Window{}, ErrNotFound
	}

	m.windows[idx].ZIndex = m.maxZ() + 1

	return m.windows[idx].clone(), nil
}

// Reclamp fits every window into a new viewport. Maximized windows refill the
// work area and keep their saved geometry.
func (m *Manager) Reclamp(vp Viewport) []Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	area := vp.WorkArea()

	changed := []Window{}
	for i := range m.windows {
		w := &m.windows[i]
		position, size := w.Position, w.Size

		if w.IsMaximized {
			w.Position = Point{}
			w.Size = m.limits.clampSize(area, area.Width, area.Height)
		} else {
			w.Size = m.limits.clampSize(w.Size, area.Width, area.Height)
			w.Position = clampPosition(w.Position, w.Size, area)
		}

		if position != w.Position || size != w.Size {
			changed = append(changed, w.clone())
		}
	}

	return changed
}

// Tile arranges visible, non-maximized windows in a grid over the work area.
func (m *Manager) Tile(vp Viewport) []Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	idxs := []int{}
	for i, w := range m.windows {
		if w.Visible() && !w.IsMaximized {
			idxs = append(idxs, i)
		}
	}
	if len(idxs) == 0 {
		return []Window{}
	}

	area := vp.WorkArea()
	panes := mosaic.NewGridCount(len(idxs)).Panes(area.Width, area.Height)

	tiled := make([]Window, 0, len(idxs))
	for i, idx := range idxs {
		w := &m.windows[idx]
		w.Size = m.limits.clampSize(Size{Width: panes[i].W, Height: panes[i].H}, area.Width, area.Height)
		w.Position = clampPosition(Point{X: panes[i].X, Y: panes[i].Y}, w.Size, area)
		tiled = append(tiled, w.clone())
	}

	return tiled
}

func (m *Manager) Get(id string) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx == -1 {
		return Window{}, ErrNotFound
	}

	return m.windows[idx].clone(), nil
}

// List returns every window in creation order.
func (m *Manager) List() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	windows := make([]Window, 0, len(m.windows))
	for _, w := range m.windows {
		windows = append(windows, w.clone())
	}
	return windows
}

// Stack returns the visible windows from bottom to top.
func (m *Manager) Stack() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	windows := []Window{}
	for _, w := range m.windows {
		if w.Visible() {
			windows = append(windows, w.clone())
		}
	}
	slices.SortStableFunc(windows, func(a, b Window) int { return a.ZIndex - b.ZIndex })
	return windows
}

// Topmost returns the id of the window with the highest stacking order,
// including minimized windows.
func (m *Manager) Topmost() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.windows) == 0 {
		return "", false
	}

	top := m.windows[0]
	for _, w := range m.windows[1:] {
		if w.ZIndex > top.ZIndex {
			top = w
		}
	}
	return top.ID, true
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.windows)
}

func (m *Manager) update(id string, fn func(w *Window)) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx == -1 {
		return Window{}, ErrNotFound
	}

	fn(&m.windows[idx])

	return m.windows[idx].clone(), nil
}

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.windows, func(w Window) bool { return w.ID == id })
}

func (m *Manager) maxZ() int {
	z := m.limits.ZFloor
	for _, w := range m.windows {
		z = max(z, w.ZIndex)
	}
	return z
}

func (m *Manager) uniqueID() string {
	base := m.newID()
	id := base
	for n := 2; m.index(id) != -1; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}
