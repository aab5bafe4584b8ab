package desktop

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ItsNotGoodName/thriveremoteos/internal/bus"
	"github.com/ItsNotGoodName/thriveremoteos/internal/wm"
	"github.com/ItsNotGoodName/thriveremoteos/pkg/sutureext"
)

// Event is published on the bus after every change to the desktop.
type Event interface {
	isEvent()
}

type (
	WindowOpened struct {
		Window wm.Window `json:"window"`
	}
	WindowChanged struct {
		Window wm.Window `json:"window"`
	}
	WindowClosed struct {
		ID string `json:"id"`
	}
	ViewportChanged struct {
		Viewport wm.Viewport `json:"viewport"`
	}
)

func (WindowOpened) isEvent()    {}
func (WindowChanged) isEvent()   {}
func (WindowClosed) isEvent()    {}
func (ViewportChanged) isEvent() {}

// Events maps event names to their types for the event stream.
var Events = map[string]any{
	"opened":   WindowOpened{},
	"changed":  WindowChanged{},
	"closed":   WindowClosed{},
	"viewport": ViewportChanged{},
}

// NewEventLogger returns a service that logs every desktop event at debug level.
func NewEventLogger(hub *bus.Hub[Event]) sutureext.ServiceFunc {
	return sutureext.NewServiceFunc("desktop.EventLogger", func(ctx context.Context) error {
		eventC, unsubscribe := hub.Subscribe(ctx)
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-eventC:
				if !ok {
					return errors.New("event logger fell behind")
				}

				switch e := event.(type) {
				case WindowOpened:
					slog.Debug("Window opened", "id", e.Window.ID, "title", e.Window.Title, "z-index", e.Window.ZIndex)
				case WindowChanged:
					slog.Debug("Window changed", "id", e.Window.ID, "position", e.Window.Position, "size", e.Window.Size,
						"minimized", e.Window.IsMinimized, "maximized", e.Window.IsMaximized, "z-index", e.Window.ZIndex)
				case WindowClosed:
					slog.Debug("Window closed", "id", e.ID)
				case ViewportChanged:
					slog.Debug("Viewport changed", "viewport", e.Viewport)
				}
			}
		}
	})
}
