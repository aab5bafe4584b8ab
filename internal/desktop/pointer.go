package desktop

import (
	"context"
	"errors"

	"github.com/ItsNotGoodName/thriveremoteos/internal/wm"
)

type PointerMode string

const (
	PointerDrag   PointerMode = "drag"
	PointerResize PointerMode = "resize"
)

// pointerSession is the state captured when a drag or resize begins.
type pointerSession struct {
	id   string
	mode PointerMode
	// drag: cursor offset inside the title bar
	offset wm.Point
	// resize: cursor and size at the start
	origin wm.Point
	start  wm.Size
}

// PointerDown raises the window and, unless it is maximized, starts a drag or
// resize that follows later PointerMove calls. A new PointerDown replaces any
// session in progress.
func (s *Shell) PointerDown(ctx context.Context, id string, mode PointerMode, cursor wm.Point) (wm.Window, error) {
	return s.change(ctx, func() (wm.Window, error) {
		s.pointer = nil

		w, err := s.manager.Focus(id)
		if err != nil {
			return wm.Window{}, err
		}
		if w.IsMaximized {
			return w, nil
		}

		switch mode {
		case PointerDrag:
			s.pointer = &pointerSession{
				id:     id,
				mode:   mode,
				offset: cursor.Sub(w.Position),
			}
		case PointerResize:
			s.pointer = &pointerSession{
				id:     id,
				mode:   mode,
				origin: cursor,
				start:  w.Size,
			}
		}

		return w, nil
	})
}

// PointerMove applies the cursor to the active session. It reports false when
// no session is active.
func (s *Shell) PointerMove(ctx context.Context, cursor wm.Point) (wm.Window, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pointer
	if p == nil {
		return wm.Window{}, false, nil
	}

	var (
		w   wm.Window
		err error
	)
	switch p.mode {
	case PointerDrag:
		w, err = s.manager.Move(p.id, cursor.Sub(p.offset), s.viewport)
	case PointerResize:
		w, err = s.manager.Resize(p.id, p.start.Grow(cursor.Sub(p.origin)), s.viewport)
	}
	if errors.Is(err, wm.ErrNotFound) {
		s.pointer = nil
	}
	if err != nil {
		return wm.Window{}, false, err
	}

	s.publish(ctx, WindowChanged{Window: w})

	return w, true, nil
}

// PointerUp ends the active session.
func (s *Shell) PointerUp() {
	s.mu.Lock()
	s.pointer = nil
	s.mu.Unlock()
}

// Dragging returns the window the active session is attached to.
func (s *Shell) Dragging() (string, PointerMode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pointer == nil {
		return "", "", false
	}
	return s.pointer.id, s.pointer.mode, true
}
