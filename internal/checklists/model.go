// Package checklists is the QuickLists domain: checklists, their items and
// the pipeline requests that read and change them.
package checklists

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Checklist struct {
	bun.BaseModel `bun:"table:checklists,alias:c"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

type ChecklistItem struct {
	bun.BaseModel `bun:"table:checklist_items,alias:ci"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ChecklistID uuid.UUID `bun:"checklist_id,notnull,type:uuid" json:"checklist_id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Checked     bool      `bun:"checked,notnull" json:"checked"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// ChecklistDTO is the response shape of a checklist.
type ChecklistDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ChecklistItemDTO is the response shape of a checklist item.
type ChecklistItemDTO struct {
	ID          string `json:"id"`
	ChecklistID string `json:"checklistId"`
	Title       string `json:"title"`
	Checked     bool   `json:"checked"`
}

func toChecklistDTO(c *Checklist) ChecklistDTO {
	return ChecklistDTO{ID: c.ID.String(), Title: c.Title}
}

func toItemDTO(i *ChecklistItem) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:          i.ID.String(),
		ChecklistID: i.ChecklistID.String(),
		Title:       i.Title,
		Checked:     i.Checked,
	}
}
