// Package api exposes the desktop over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ItsNotGoodName/thriveremoteos/internal/build"
	"github.com/ItsNotGoodName/thriveremoteos/internal/bus"
	"github.com/ItsNotGoodName/thriveremoteos/internal/desktop"
	"github.com/ItsNotGoodName/thriveremoteos/internal/wm"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
)

func NewHandler(shell *desktop.Shell, hub *bus.Hub[desktop.Event]) *Handler {
	return &Handler{
		shell: shell,
		hub:   hub,
	}
}

type Handler struct {
	shell *desktop.Shell
	hub   *bus.Hub[desktop.Event]
}

type (
	WindowOutput struct {
		Body wm.Window
	}
	WindowsOutput struct {
		Body []wm.Window
	}
	WindowIDInput struct {
		ID string `path:"id" doc:"Window ID"`
	}
)

// Register adds every desktop operation to api.
func Register(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-windows",
		Method:      http.MethodGet,
		Path:        "/api/windows",
		Summary:     "List windows in the order they were opened",
		Tags:        []string{"Windows"},
	}, h.ListWindows)

	huma.Register(api, huma.Operation{
		OperationID:   "open-window",
		Method:        http.MethodPost,
		Path:          "/api/windows",
		Summary:       "Open a window",
		Tags:          []string{"Windows"},
		DefaultStatus: http.StatusCreated,
	}, h.OpenWindow)

	huma.Register(api, huma.Operation{
		OperationID: "tile-windows",
		Method:      http.MethodPost,
		Path:        "/api/windows/tile",
		Summary:     "Tile visible windows",
		Tags:        []string{"Windows"},
	}, h.TileWindows)

	huma.Register(api, huma.Operation{
		OperationID: "get-window",
		Method:      http.MethodGet,
		Path:        "/api/windows/{id}",
		Summary:     "Get a window",
		Tags:        []string{"Windows"},
	}, h.GetWindow)

	huma.Register(api, huma.Operation{
		OperationID: "close-window",
		Method:      http.MethodDelete,
		Path:        "/api/windows/{id}",
		Summary:     "Close a window",
		Tags:        []string{"Windows"},
	}, h.CloseWindow)

	huma.Register(api, huma.Operation{
		OperationID: "minimize-window",
		Method:      http.MethodPost,
		Path:        "/api/windows/{id}/minimize",
		Summary:     "Toggle minimized",
		Tags:        []string{"Windows"},
	}, h.MinimizeWindow)

	huma.Register(api, huma.Operation{
		OperationID: "maximize-window",
		Method:      http.MethodPost,
		Path:        "/api/windows/{id}/maximize",
		Summary:     "Toggle maximized",
		Tags:        []string{"Windows"},
	}, h.MaximizeWindow)

	huma.Register(api, huma.Operation{
		OperationID: "focus-window",
		Method:      http.MethodPost,
		Path:        "/api/windows/{id}/focus",
		Summary:     "Raise a window to the top",
		Tags:        []string{"Windows"},
	}, h.FocusWindow)

	huma.Register(api, huma.Operation{
		OperationID: "move-window",
		Method:      http.MethodPut,
		Path:        "/api/windows/{id}/position",
		Summary:     "Move a window",
		Tags:        []string{"Windows"},
	}, h.MoveWindow)

	huma.Register(api, huma.Operation{
		OperationID: "resize-window",
		Method:      http.MethodPut,
		Path:        "/api/windows/{id}/size",
		Summary:     "Resize a window",
		Tags:        []string{"Windows"},
	}, h.ResizeWindow)

	huma.Register(api, huma.Operation{
		OperationID: "get-viewport",
		Method:      http.MethodGet,
		Path:        "/api/viewport",
		Summary:     "Get the viewport",
		Tags:        []string{"Desktop"},
	}, h.GetViewport)

	huma.Register(api, huma.Operation{
		OperationID: "set-viewport",
		Method:      http.MethodPut,
		Path:        "/api/viewport",
		Summary:     "Set the viewport and refit every window",
		Tags:        []string{"Desktop"},
	}, h.SetViewport)

	huma.Register(api, huma.Operation{
		OperationID: "list-apps",
		Method:      http.MethodGet,
		Path:        "/api/apps",
		Summary:     "List launchable apps",
		Tags:        []string{"Desktop"},
	}, h.ListApps)

	huma.Register(api, huma.Operation{
		OperationID:   "launch-app",
		Method:        http.MethodPost,
		Path:          "/api/apps/{key}/launch",
		Summary:       "Launch an app",
		Tags:          []string{"Desktop"},
		DefaultStatus: http.StatusCreated,
	}, h.LaunchApp)

	huma.Register(api, huma.Operation{
		OperationID:   "shortcut",
		Method:        http.MethodPost,
		Path:          "/api/shortcut",
		Summary:       "Launch the app named by a URL query",
		Tags:          []string{"Desktop"},
		DefaultStatus: http.StatusCreated,
	}, h.Shortcut)

	huma.Register(api, huma.Operation{
		OperationID: "pointer-down",
		Method:      http.MethodPost,
		Path:        "/api/pointer/down",
		Summary:     "Begin a drag or resize",
		Tags:        []string{"Pointer"},
	}, h.PointerDown)

	huma.Register(api, huma.Operation{
		OperationID: "pointer-move",
		Method:      http.MethodPost,
		Path:        "/api/pointer/move",
		Summary:     "Continue a drag or resize",
		Tags:        []string{"Pointer"},
	}, h.PointerMove)

	huma.Register(api, huma.Operation{
		OperationID: "pointer-up",
		Method:      http.MethodPost,
		Path:        "/api/pointer/up",
		Summary:     "End a drag or resize",
		Tags:        []string{"Pointer"},
	}, h.PointerUp)

	huma.Register(api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Get build information",
		Tags:        []string{"System"},
	}, h.GetVersion)

	sse.Register(api, huma.Operation{
		OperationID: "events",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Stream desktop events",
		Tags:        []string{"Desktop"},
	}, desktop.Events, h.Events)
}

func (h *Handler) ListWindows(ctx context.Context, input *struct{}) (*WindowsOutput, error) {
	return &WindowsOutput{Body: h.shell.Taskbar()}, nil
}

type OpenWindowInput struct {
	Body struct {
		Title     string       `json:"title" minLength:"1"`
		Icon      string       `json:"icon,omitempty"`
		Content   string       `json:"content,omitempty"`
		Size      wm.Size      `json:"size"`
		Placement wm.Placement `json:"placement,omitempty" enum:"center,scatter"`
	}
}

func (h *Handler) OpenWindow(ctx context.Context, input *OpenWindowInput) (*WindowOutput, error) {
	w := h.shell.Open(ctx, wm.OpenRequest{
		Title:     input.Body.Title,
		Icon:      input.Body.Icon,
		Content:   input.Body.Content,
		Size:      input.Body.Size,
		Placement: input.Body.Placement,
	})
	return &WindowOutput{Body: w}, nil
}

func (h *Handler) TileWindows(ctx context.Context, input *struct{}) (*WindowsOutput, error) {
	return &WindowsOutput{Body: h.shell.Tile(ctx)}, nil
}

func (h *Handler) GetWindow(ctx context.Context, input *WindowIDInput) (*WindowOutput, error) {
	w, err := h.shell.Get(input.ID)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &WindowOutput{Body: w}, nil
}

func (h *Handler) CloseWindow(ctx context.Context, input *WindowIDInput) (*struct{}, error) {
	if err := h.shell.Close(ctx, input.ID); err != nil {
		return nil, toAPIError(err)
	}
	return &struct{}{}, nil
}

func (h *Handler) MinimizeWindow(ctx context.Context, input *WindowIDInput) (*WindowOutput, error) {
	return windowOutput(h.shell.TaskbarClick(ctx, input.ID))
}

func (h *Handler) MaximizeWindow(ctx context.Context, input *WindowIDInput) (*WindowOutput, error) {
	return windowOutput(h.shell.Maximize(ctx, input.ID))
}

func (h *Handler) FocusWindow(ctx context.Context, input *WindowIDInput) (*WindowOutput, error) {
	return windowOutput(h.shell.Focus(ctx, input.ID))
}

type MoveWindowInput struct {
	ID   string `path:"id" doc:"Window ID"`
	Body wm.Point
}

func (h *Handler) MoveWindow(ctx context.Context, input *MoveWindowInput) (*WindowOutput, error) {
	return windowOutput(h.shell.Move(ctx, input.ID, input.Body))
}

type ResizeWindowInput struct {
	ID   string `path:"id" doc:"Window ID"`
	Body wm.Size
}

func (h *Handler) ResizeWindow(ctx context.Context, input *ResizeWindowInput) (*WindowOutput, error) {
	return windowOutput(h.shell.Resize(ctx, input.ID, input.Body))
}

type ViewportOutput struct {
	Body wm.Viewport
}

func (h *Handler) GetViewport(ctx context.Context, input *struct{}) (*ViewportOutput, error) {
	return &ViewportOutput{Body: h.shell.Viewport()}, nil
}

type SetViewportInput struct {
	Body struct {
		Width  int  `json:"width" minimum:"0"`
		Height int  `json:"height" minimum:"0"`
		Chrome int  `json:"chrome" minimum:"0"`
		Mobile bool `json:"mobile,omitempty"`
	}
}

func (h *Handler) SetViewport(ctx context.Context, input *SetViewportInput) (*ViewportOutput, error) {
	vp := h.shell.SetViewport(ctx, wm.Viewport{
		Width:  input.Body.Width,
		Height: input.Body.Height,
		Chrome: input.Body.Chrome,
		Mobile: input.Body.Mobile,
	})
	return &ViewportOutput{Body: vp}, nil
}

type AppsOutput struct {
	Body []desktop.App
}

func (h *Handler) ListApps(ctx context.Context, input *struct{}) (*AppsOutput, error) {
	return &AppsOutput{Body: h.shell.Catalog().Apps()}, nil
}

type LaunchAppInput struct {
	Key  string `path:"key" doc:"App key"`
	Body struct {
		From desktop.Affordance `json:"from,omitempty" enum:"icon,menu,shortcut,api" doc:"Part of the desktop the launch came from"`
	} `required:"false"`
}

func (h *Handler) LaunchApp(ctx context.Context, input *LaunchAppInput) (*WindowOutput, error) {
	from := input.Body.From
	if from == "" {
		from = desktop.AffordanceAPI
	}
	return windowOutput(h.shell.Launch(ctx, input.Key, from))
}

type ShortcutInput struct {
	Body struct {
		Query string `json:"query" example:"?app=jobs" doc:"URL query naming the app"`
	}
}

func (h *Handler) Shortcut(ctx context.Context, input *ShortcutInput) (*WindowOutput, error) {
	return windowOutput(h.shell.Shortcut(ctx, input.Body.Query))
}

type PointerDownInput struct {
	Body struct {
		ID   string              `json:"id"`
		Mode desktop.PointerMode `json:"mode" enum:"drag,resize"`
		X    int                 `json:"x"`
		Y    int                 `json:"y"`
	}
}

func (h *Handler) PointerDown(ctx context.Context, input *PointerDownInput) (*WindowOutput, error) {
	return windowOutput(h.shell.PointerDown(ctx, input.Body.ID, input.Body.Mode, wm.Point{X: input.Body.X, Y: input.Body.Y}))
}

type PointerMoveInput struct {
	Body wm.Point
}

type PointerMoveOutput struct {
	Body struct {
		Active bool       `json:"active" doc:"False when no drag or resize is in progress"`
		Window *wm.Window `json:"window,omitempty"`
	}
}

func (h *Handler) PointerMove(ctx context.Context, input *PointerMoveInput) (*PointerMoveOutput, error) {
	w, ok, err := h.shell.PointerMove(ctx, input.Body)
	if err != nil {
		return nil, toAPIError(err)
	}

	res := &PointerMoveOutput{}
	res.Body.Active = ok
	if ok {
		res.Body.Window = &w
	}
	return res, nil
}

func (h *Handler) PointerUp(ctx context.Context, input *struct{}) (*struct{}, error) {
	h.shell.PointerUp()
	return &struct{}{}, nil
}

type VersionOutput struct {
	Body build.Build
}

func (h *Handler) GetVersion(ctx context.Context, input *struct{}) (*VersionOutput, error) {
	return &VersionOutput{Body: build.Current}, nil
}

func (h *Handler) Events(ctx context.Context, input *struct{}, send sse.Sender) {
	eventC, unsubscribe := h.hub.Subscribe(ctx)
	defer unsubscribe()

	// The first message opens the stream for the client.
	if err := send.Data(desktop.ViewportChanged{Viewport: h.shell.Viewport()}); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventC:
			if !ok {
				// Fell behind. The client reconnects and reloads the windows.
				return
			}
			if err := send.Data(event); err != nil {
				return
			}
		}
	}
}

func windowOutput(w wm.Window, err error) (*WindowOutput, error) {
	if err != nil {
		return nil, toAPIError(err)
	}
	return &WindowOutput{Body: w}, nil
}

func toAPIError(err error) error {
	switch {
	case errors.Is(err, wm.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, desktop.ErrUnknownApp):
		return huma.Error404NotFound(err.Error())
	default:
		return huma.Error422UnprocessableEntity(err.Error())
	}
}
