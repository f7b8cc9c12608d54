package domain

// Highlight labels recognized by the classifier and the sidebar filter tabs.
const (
	LabelIssue      = "ISSUE"
	LabelLegalTest  = "LEGAL_TEST"
	LabelConclusion = "CONCLUSION"
	LabelAxiom      = "AXIOM"
	LabelOther      = "OTHER"
)

// Rect is a rectangle in scaled (viewport-independent) coordinates.
// Screen-space rectangles must be converted through Renderer.ViewportToScaled
// before they are stored.
type Rect struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position anchors a highlight to a region of a document page. Rects carries
// the per-line rectangles of a multi-line text span.
type Position struct {
	BoundingRect Rect   `json:"boundingRect"`
	PageNumber   int    `json:"pageNumber"`
	Rects        []Rect `json:"rects"`
}

// PositionPatch is a partial position used for post-hoc bounding-box
// adjustment of area highlights. Nil fields are left untouched.
type PositionPatch struct {
	BoundingRect *Rect  `json:"boundingRect,omitempty"`
	Rects        []Rect `json:"rects,omitempty"`
}

// Content is what a highlight captured: extracted text, a rasterized
// screenshot (data URI) for area highlights, or both.
type Content struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// ContentPatch is a partial content merge. Nil fields are left untouched.
type ContentPatch struct {
	Text  *string `json:"text,omitempty"`
	Image *string `json:"image,omitempty"`
}

// Comment is the user's annotation on a highlight. Label is an optional
// categorical tag driving display color; ClassifierScore is an optional
// confidence reported by an external classifier.
type Comment struct {
	Text            string   `json:"text"`
	Label           string   `json:"label,omitempty"`
	ClassifierScore *float64 `json:"classifier_score,omitempty"`
}

// Highlight is a persisted annotation anchored to a region of a document
// page. IDs are assigned by the store at creation time and never reused.
type Highlight struct {
	ID       string   `json:"id"`
	Comment  Comment  `json:"comment"`
	Content  Content  `json:"content"`
	Position Position `json:"position"`
}

// DraftHighlight is a highlight before the store has assigned it an id.
type DraftHighlight struct {
	Comment  Comment  `json:"comment"`
	Content  Content  `json:"content"`
	Position Position `json:"position"`
}

// LabelColor maps a highlight label to its display color. Unknown labels fall
// back to the OTHER color.
func LabelColor(label string) string {
	switch label {
	case LabelIssue:
		return "blue"
	case LabelLegalTest:
		return "purple"
	case LabelConclusion:
		return "green"
	case LabelAxiom:
		return "yellow"
	default:
		return "gray"
	}
}
