package service

import (
	"pdf-annotator/internal/domain"
	apperrors "pdf-annotator/pkg/errors"
)

// PipelineState is the authoring phase of the selection pipeline.
type PipelineState int

const (
	// StateIdle: no selection in flight.
	StateIdle PipelineState = iota
	// StateSelected: the renderer owns an ephemeral ghost selection.
	StateSelected
	// StatePrompting: the compact "Add highlight" affordance is shown.
	StatePrompting
	// StateCommenting: the expanded comment form is shown; the ghost has
	// been snapshotted and is immutable from here on.
	StateCommenting
)

// SelectionPipeline turns an ephemeral selection reported by the renderer
// into a persisted highlight via the two-phase authoring flow, or in pen mode
// commits every selection immediately with an empty comment.
//
// The ghost's content and position are snapshotted atomically when the user
// proceeds past the compact prompt; a document reflow after that point cannot
// invalidate the captured geometry.
type SelectionPipeline struct {
	store    *HighlightStore
	renderer domain.Renderer
	logger   domain.Logger

	state    PipelineState
	ghost    domain.Selection
	snapshot domain.Selection
	penMode  bool
}

func NewSelectionPipeline(store *HighlightStore, renderer domain.Renderer, logger domain.Logger) *SelectionPipeline {
	return &SelectionPipeline{
		store:    store,
		renderer: renderer,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current authoring phase.
func (p *SelectionPipeline) State() PipelineState {
	return p.state
}

// SetPenMode toggles one-step authoring: every finished selection is
// committed immediately with an empty comment.
func (p *SelectionPipeline) SetPenMode(enabled bool) {
	p.penMode = enabled
}

// SelectionFinished implements domain.SelectionHandler. The renderer calls
// it synchronously when the user completes a drag.
func (p *SelectionPipeline) SelectionFinished(selection domain.Selection) error {
	if selection.Position.PageNumber < 1 {
		return apperrors.NewValidationError("selection has no valid page")
	}

	if p.penMode {
		p.state = StateIdle
		_, err := p.store.Add(domain.DraftHighlight{
			Content:  selection.Content,
			Position: selection.Position,
			Comment:  domain.Comment{},
		})
		return err
	}

	p.ghost = selection
	p.state = StateSelected
	return nil
}

// ShowPrompt presents the compact affordance over the ghost selection.
func (p *SelectionPipeline) ShowPrompt() error {
	if p.state != StateSelected {
		return apperrors.NewValidationError("no selection to prompt for")
	}
	p.state = StatePrompting
	return nil
}

// ExpandCommentForm is the compact-to-expanded transition. The ghost is
// snapshotted here, before any layout shift can invalidate it.
func (p *SelectionPipeline) ExpandCommentForm() error {
	if p.state != StatePrompting {
		return apperrors.NewValidationError("prompt is not shown")
	}
	p.snapshot = p.ghost
	p.state = StateCommenting
	return nil
}

// SubmitComment commits the snapshotted selection with the entered text and
// returns the pipeline to idle. Empty text is valid: "no comment" is a
// display distinction, not a validation error.
func (p *SelectionPipeline) SubmitComment(text string) (domain.Highlight, error) {
	if p.state != StateCommenting {
		return domain.Highlight{}, apperrors.NewValidationError("comment form is not open")
	}

	highlight, err := p.store.Add(domain.DraftHighlight{
		Content:  p.snapshot.Content,
		Position: p.snapshot.Position,
		Comment:  domain.Comment{Text: text},
	})
	if err != nil {
		return domain.Highlight{}, err
	}

	p.discard()
	return highlight, nil
}

// Cancel discards the ghost at any phase and returns to idle without
// mutating the store.
func (p *SelectionPipeline) Cancel() {
	p.discard()
}

// EditComment reopens authoring for an existing highlight, bound to a
// comment update instead of an add. Unknown ids are a silent no-op.
func (p *SelectionPipeline) EditComment(id, text string) {
	p.store.UpdateComment(id, text)
}

// AdjustAreaHighlight merges a dragged viewport rectangle into an existing
// area highlight. The rectangle is converted to scaled coordinates and a
// fresh screenshot is captured before anything reaches the store; raw screen
// pixels are never persisted.
func (p *SelectionPipeline) AdjustAreaHighlight(id string, viewport domain.Rect) {
	scaled := p.renderer.ViewportToScaled(viewport)
	image := p.renderer.Screenshot(viewport)
	p.store.Update(id,
		domain.PositionPatch{BoundingRect: &scaled},
		domain.ContentPatch{Image: &image},
	)
}

func (p *SelectionPipeline) discard() {
	p.ghost = domain.Selection{}
	p.snapshot = domain.Selection{}
	p.state = StateIdle
}
