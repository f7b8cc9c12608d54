package domain

// Selection types reported by the rendering collaborator.
const (
	SelectionText = "text"
	SelectionArea = "area"
)

// Selection is an ephemeral ghost selection reported by the rendering
// collaborator. It is owned by the renderer until the authoring pipeline
// commits it to the store.
type Selection struct {
	Content  Content
	Position Position
	Type     string
}

// Renderer is the capability surface of the external PDF layout engine. The
// engine renders pages; this service only consumes its coordinate transform,
// scrolling and screenshot operations.
type Renderer interface {
	// ViewportToScaled converts a screen-space rectangle at the current zoom
	// into scaled coordinates suitable for persistence.
	ViewportToScaled(viewport Rect) Rect
	// ScrollToHighlight scrolls the document view to the given highlight.
	ScrollToHighlight(id string)
	// Screenshot rasterizes a viewport rectangle and returns it as a data URI.
	Screenshot(viewport Rect) string
}

// SelectionHandler is invoked synchronously by the rendering collaborator
// when the user finishes a text or area selection.
type SelectionHandler interface {
	SelectionFinished(selection Selection) error
}
