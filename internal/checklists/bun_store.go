package checklists

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Interface assertion to ensure BunStore satisfies Store
var _ Store = (*BunStore)(nil)

// OpenSQLite opens a bun database on the sqlite3 driver. In-memory
// databases are limited to one connection so every query sees the same data.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		sqldb.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates the checklist tables when they do not exist.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{(*Checklist)(nil), (*ChecklistItem)(nil)}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}

	_, err := db.NewCreateIndex().
		Model((*ChecklistItem)(nil)).
		Index("idx_checklist_items_checklist_id").
		Column("checklist_id").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create checklist item index: %w", err)
	}
	return nil
}

// BunStore is the Store backed by go-repository-bun repositories.
type BunStore struct {
	db         *bun.DB
	checklists repository.Repository[*Checklist]
	items      repository.Repository[*ChecklistItem]
}

// NewBunStore builds the checklist and item repositories on db.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{
		db:         db,
		checklists: repository.NewRepository[*Checklist](db, checklistHandlers()),
		items:      repository.NewRepository[*ChecklistItem](db, itemHandlers()),
	}
}

func checklistHandlers() repository.ModelHandlers[*Checklist] {
	return repository.ModelHandlers[*Checklist]{
		NewRecord: func() *Checklist {
			return &Checklist{}
		},
		GetID: func(record *Checklist) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Checklist, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "title"
		},
	}
}

func itemHandlers() repository.ModelHandlers[*ChecklistItem] {
	return repository.ModelHandlers[*ChecklistItem]{
		NewRecord: func() *ChecklistItem {
			return &ChecklistItem{}
		},
		GetID: func(record *ChecklistItem) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *ChecklistItem, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "title"
		},
	}
}

func (s *BunStore) ListChecklists(ctx context.Context) ([]*Checklist, error) {
	records, _, err := s.checklists.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("updated_at DESC")
	})
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	return records, nil
}

func (s *BunStore) GetChecklist(ctx context.Context, id uuid.UUID) (*Checklist, error) {
	record, err := s.checklists.GetByID(ctx, id.String())
	if err != nil {
		if IsNotFound(err) {
			return nil, checklistNotFound(id)
		}
		return nil, fmt.Errorf("get checklist %s: %w", id, err)
	}
	return record, nil
}

func (s *BunStore) CreateChecklist(ctx context.Context, checklist *Checklist) (*Checklist, error) {
	record, err := s.checklists.Create(ctx, checklist)
	if err != nil {
		return nil, fmt.Errorf("create checklist: %w", err)
	}
	return record, nil
}

func (s *BunStore) UpdateChecklist(ctx context.Context, checklist *Checklist) (*Checklist, error) {
	record, err := s.checklists.Update(ctx, checklist)
	if err != nil {
		return nil, fmt.Errorf("update checklist %s: %w", checklist.ID, err)
	}
	return record, nil
}

func (s *BunStore) DeleteChecklist(ctx context.Context, id uuid.UUID) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := s.items.DeleteWhereTx(ctx, tx, func(q *bun.DeleteQuery) *bun.DeleteQuery {
			return q.Where("checklist_id = ?", id)
		})
		if err != nil {
			return fmt.Errorf("delete items of checklist %s: %w", id, err)
		}

		if err := s.checklists.DeleteTx(ctx, tx, &Checklist{ID: id}); err != nil {
			return fmt.Errorf("delete checklist %s: %w", id, err)
		}
		return nil
	})
}

func (s *BunStore) ListItems(ctx context.Context, checklistID uuid.UUID) ([]*ChecklistItem, error) {
	records, _, err := s.items.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("checklist_id = ?", checklistID).Order("created_at ASC")
	})
	if err != nil {
		return nil, fmt.Errorf("list items of checklist %s: %w", checklistID, err)
	}
	return records, nil
}

func (s *BunStore) GetItem(ctx context.Context, id uuid.UUID) (*ChecklistItem, error) {
	record, err := s.items.GetByID(ctx, id.String())
	if err != nil {
		if IsNotFound(err) {
			return nil, itemNotFound(id)
		}
		return nil, fmt.Errorf("get checklist item %s: %w", id, err)
	}
	return record, nil
}

func (s *BunStore) CreateItem(ctx context.Context, item *ChecklistItem) (*ChecklistItem, error) {
	record, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create checklist item: %w", err)
	}
	return record, nil
}

func (s *BunStore) UpdateItem(ctx context.Context, item *ChecklistItem) (*ChecklistItem, error) {
	record, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("update checklist item %s: %w", item.ID, err)
	}
	return record, nil
}

func (s *BunStore) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, &ChecklistItem{ID: id}); err != nil {
		return fmt.Errorf("delete checklist item %s: %w", id, err)
	}
	return nil
}

func (s *BunStore) ResetItems(ctx context.Context, checklistID uuid.UUID, at time.Time) (int, error) {
	res, err := s.db.NewUpdate().
		Model((*ChecklistItem)(nil)).
		Set("checked = ?", false).
		Set("updated_at = ?", at).
		Where("checklist_id = ?", checklistID).
		Where("checked = ?", true).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset items of checklist %s: %w", checklistID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset items of checklist %s: %w", checklistID, err)
	}
	return int(n), nil
}
