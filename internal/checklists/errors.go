package checklists

import (
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-pipeline-cache/pipeline"
)

const (
	CodeChecklistNotFound = "CHECKLIST_NOT_FOUND"
	CodeItemNotFound      = "CHECKLIST_ITEM_NOT_FOUND"
	CodeInvalidID         = "INVALID_ID"
)

func checklistNotFound(id uuid.UUID) error {
	return goerrors.New(fmt.Sprintf("checklist %s not found", id), goerrors.CategoryNotFound).
		WithTextCode(CodeChecklistNotFound)
}

func itemNotFound(id uuid.UUID) error {
	return goerrors.New(fmt.Sprintf("checklist item %s not found", id), goerrors.CategoryNotFound).
		WithTextCode(CodeItemNotFound)
}

// IsNotFound reports whether err means the checklist or item does not exist.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, sql.ErrNoRows) || pipeline.IsCategory(err, goerrors.CategoryNotFound)
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("%s must be a valid UUID", field)).
			WithTextCode(CodeInvalidID)
	}
	return id, nil
}
