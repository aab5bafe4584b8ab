// Package desktop is the shell around the window manager: the icon grid,
// start menu, taskbar and pointer handling of the browser desktop.
package desktop

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ItsNotGoodName/thriveremoteos/internal/bus"
	"github.com/ItsNotGoodName/thriveremoteos/internal/wm"
)

// Affordance is the piece of desktop UI a launch came from.
type Affordance string

const (
	AffordanceIcon     Affordance = "icon"
	AffordanceMenu     Affordance = "menu"
	AffordanceShortcut Affordance = "shortcut"
	AffordanceAPI      Affordance = "api"
)

func (a Affordance) placement() wm.Placement {
	switch a {
	case AffordanceIcon, AffordanceMenu:
		return wm.PlacementScatter
	default:
		return wm.PlacementCenter
	}
}

func New(manager *wm.Manager, catalog Catalog, hub *bus.Hub[Event], viewport wm.Viewport) *Shell {
	return &Shell{
		manager:  manager,
		catalog:  catalog,
		hub:      hub,
		viewport: viewport,
	}
}

// Shell serializes pointer sessions and viewport changes around the manager
// and publishes the result of every change. Events are published before the
// lock is released so subscribers see them in the order the changes happened.
type Shell struct {
	mu       sync.Mutex
	manager  *wm.Manager
	catalog  Catalog
	hub      *bus.Hub[Event]
	viewport wm.Viewport
	pointer  *pointerSession
}

func (s *Shell) Catalog() Catalog {
	return s.catalog
}

func (s *Shell) Viewport() wm.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewport
}

// SetViewport records the browser's viewport and refits every window into it.
func (s *Shell) SetViewport(ctx context.Context, viewport wm.Viewport) wm.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewport = viewport
	changed := s.manager.Reclamp(viewport)

	s.publish(ctx, ViewportChanged{Viewport: viewport})
	for _, w := range changed {
		s.publish(ctx, WindowChanged{Window: w})
	}

	return viewport
}

// Open opens a window with caller supplied presets.
func (s *Shell) Open(ctx context.Context, req wm.OpenRequest) wm.Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.manager.Open(req, s.viewport)

	slog.Info("Opened window", "id", w.ID, "title", w.Title)
	s.publish(ctx, WindowOpened{Window: w})

	return w
}

// Launch opens the catalog app with the given key.
func (s *Shell) Launch(ctx context.Context, key string, from Affordance) (wm.Window, error) {
	app, err := s.catalog.Lookup(key)
	if err != nil {
		return wm.Window{}, err
	}

	return s.Open(ctx, wm.OpenRequest{
		Title:     app.Title,
		Icon:      app.Icon,
		Content:   app.Content,
		Size:      app.Size,
		Placement: from.placement(),
	}), nil
}

// Shortcut launches the app named by a URL query such as "?app=jobs".
func (s *Shell) Shortcut(ctx context.Context, query string) (wm.Window, error) {
	app, err := s.catalog.Shortcut(query)
	if err != nil {
		return wm.Window{}, err
	}

	return s.Launch(ctx, app.Key, AffordanceShortcut)
}

func (s *Shell) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager.Close(id); err != nil {
		return err
	}
	if s.pointer != nil && s.pointer.id == id {
		s.pointer = nil
	}

	slog.Info("Closed window", "id", id)
	s.publish(ctx, WindowClosed{ID: id})

	return nil
}

// Minimize toggles the window.
func (s *Shell) Minimize(ctx context.Context, id string) (wm.Window, error) {
	return s.change(ctx, func() (wm.Window, error) {
		return s.manager.Minimize(id)
	})
}

// TaskbarClick hides a shown window and shows a hidden one.
func (s *Shell) TaskbarClick(ctx context.Context, id string) (wm.Window, error) {
	return s.Minimize(ctx, id)
}

// Maximize toggles the window and raises it.
func (s *Shell) Maximize(ctx context.Context, id string) (wm.Window, error) {
	return s.change(ctx, func() (wm.Window, error) {
		if _, err := s.manager.Focus(id); err != nil {
			return wm.Window{}, err
		}
		return s.manager.MaximizeToggle(id, s.viewport)
	})
}

func (s *Shell) Focus(ctx context.Context, id string) (wm.Window, error) {
	return s.change(ctx, func() (wm.Window, error) {
		return s.manager.Focus(id)
	})
}

func (s *Shell) Move(ctx context.Context, id string, position wm.Point) (wm.Window, error) {
	return s.change(ctx, func() (wm.Window, error) {
		return s.manager.Move(id, position, s.viewport)
	})
}

func (s *Shell) Resize(ctx context.Context, id string, size wm.Size) (wm.Window, error) {
	return s.change(ctx, func() (wm.Window, error) {
		return s.manager.Resize(id, size, s.viewport)
	})
}

// Tile arranges the visible windows in a grid.
func (s *Shell) Tile(ctx context.Context) []wm.Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiled := s.manager.Tile(s.viewport)

	for _, w := range tiled {
		s.publish(ctx, WindowChanged{Window: w})
	}

	return tiled
}

func (s *Shell) Get(id string) (wm.Window, error) {
	return s.manager.Get(id)
}

// Taskbar returns every window in the order it was opened.
func (s *Shell) Taskbar() []wm.Window {
	return s.manager.List()
}

// Stack returns the windows to render, bottom first.
func (s *Shell) Stack() []wm.Window {
	return s.manager.Stack()
}

func (s *Shell) change(ctx context.Context, fn func() (wm.Window, error)) (wm.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := fn()
	if err != nil {
		return wm.Window{}, err
	}

	s.publish(ctx, WindowChanged{Window: w})

	return w, nil
}

// publish ignores cancellation of ctx because the change it reports has
// already happened.
func (s *Shell) publish(ctx context.Context, event Event) {
	if err := s.hub.Broadcast(context.WithoutCancel(ctx), event); err != nil {
		slog.Error("Failed to publish desktop event", "error", err)
	}
}
