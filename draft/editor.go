// Package draft holds the scratch state of the product forms. Only one form
// is open at a time: either a new product is being created or an existing
// one is being edited.
package draft

import (
	"errors"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
)

var (
	ErrDraftOpen = errors.New("another draft is already open")
	ErrNoDraft   = errors.New("no draft is open")
)

type Mode int

const (
	Closed Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

// Snapshot is a read-only view of the open draft.
type Snapshot struct {
	Mode      Mode                `json:"-"`
	State     string              `json:"state"`
	ProductID int64               `json:"product_id,omitempty"`
	Draft     models.DraftProduct `json:"draft"`
}

// Editor is the dialog state machine:
// Closed -> Creating|Editing -> Closed.
type Editor struct {
	mode      Mode
	productID int64
	draft     models.DraftProduct
}

func NewEditor() *Editor {
	return &Editor{}
}

// OpenCreate starts a blank new-product draft.
func (e *Editor) OpenCreate() error {
	if e.mode != Closed {
		return ErrDraftOpen
	}
	e.mode = Creating
	e.productID = 0
	e.draft = models.NewDraft()
	return nil
}

// OpenEdit starts an edit draft holding a copy of product. Changes to the
// draft do not reach the product until the draft is saved.
func (e *Editor) OpenEdit(product models.Product) error {
	if e.mode != Closed {
		return ErrDraftOpen
	}
	e.mode = Editing
	e.productID = product.ID
	e.draft = product.Draft()
	return nil
}

func (e *Editor) Mode() Mode { return e.mode }

// Current returns the open draft, or false when the editor is closed.
func (e *Editor) Current() (Snapshot, bool) {
	if e.mode == Closed {
		return Snapshot{State: Closed.String()}, false
	}
	return Snapshot{
		Mode:      e.mode,
		State:     e.mode.String(),
		ProductID: e.productID,
		Draft:     e.draft.Apply(models.DraftPatch{}),
	}, true
}

// Patch replaces draft fields. Values are not validated here.
func (e *Editor) Patch(patch models.DraftPatch) error {
	if e.mode == Closed {
		return ErrNoDraft
	}
	e.draft = e.draft.Apply(patch)
	return nil
}

func (e *Editor) ToggleSize(size string, checked bool) error {
	if e.mode == Closed {
		return ErrNoDraft
	}
	e.draft = ToggleSize(e.draft, size, checked)
	return nil
}

// Cancel drops the draft. Cancelling a closed editor is a no-op.
func (e *Editor) Cancel() {
	e.Close()
}

// Close returns the editor to Closed, typically after a successful save.
func (e *Editor) Close() {
	e.mode = Closed
	e.productID = 0
	e.draft = models.DraftProduct{}
}

// ToggleSize returns d with size added when checked, removed otherwise.
func ToggleSize(d models.DraftProduct, size string, checked bool) models.DraftProduct {
	if checked {
		d.Sizes = d.Sizes.With(size)
	} else {
		d.Sizes = d.Sizes.Without(size)
	}
	return d
}
