package wm

type Placement string

const (
	PlacementCenter  Placement = "center"
	PlacementScatter Placement = "scatter"
)

type OpenRequest struct {
	Title   string
	Icon    string
	Content string
	Size    Size
	// Placement defaults to PlacementCenter.
	Placement Placement
}

type Window struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Icon    string `json:"icon"`
	Content string `json:"content"`

	Position Point `json:"position"`
	Size     Size  `json:"size"`
	ZIndex   int   `json:"zIndex"`

	IsMinimized bool `json:"isMinimized"`
	IsMaximized bool `json:"isMaximized"`

	PreviousPosition *Point `json:"previousPosition,omitempty"`
	PreviousSize     *Size  `json:"previousSize,omitempty"`
}

// Visible reports whether the window should be rendered.
func (w Window) Visible() bool {
	return !w.IsMinimized
}

func (w Window) clone() Window {
	if w.PreviousPosition != nil {
		p := *w.PreviousPosition
		w.PreviousPosition = &p
	}
	if w.PreviousSize != nil {
		s := *w.PreviousSize
		w.PreviousSize = &s
	}
	return w
}

func (w *Window) savePrevious() {
	p, s := w.Position, w.Size
	w.PreviousPosition = &p
	w.PreviousSize = &s
}
