package checklists

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists checklists and their items. Lookups of missing records
// return an error for which IsNotFound is true.
type Store interface {
	ListChecklists(ctx context.Context) ([]*Checklist, error)
	GetChecklist(ctx context.Context, id uuid.UUID) (*Checklist, error)
	CreateChecklist(ctx context.Context, checklist *Checklist) (*Checklist, error)
	UpdateChecklist(ctx context.Context, checklist *Checklist) (*Checklist, error)
	// DeleteChecklist removes the checklist together with its items.
	DeleteChecklist(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, checklistID uuid.UUID) ([]*ChecklistItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ChecklistItem, error)
	CreateItem(ctx context.Context, item *ChecklistItem) (*ChecklistItem, error)
	UpdateItem(ctx context.Context, item *ChecklistItem) (*ChecklistItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	// ResetItems unchecks every item of a checklist and returns how many
	// rows changed.
	ResetItems(ctx context.Context, checklistID uuid.UUID, at time.Time) (int, error)
}
