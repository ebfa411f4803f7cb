package checklists

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for handler tests
type memStore struct {
	mu         sync.Mutex
	checklists map[uuid.UUID]Checklist
	items      map[uuid.UUID]ChecklistItem
	calls      map[string]int
	failWith   error
}

func newMemStore() *memStore {
	return &memStore{
		checklists: make(map[uuid.UUID]Checklist),
		items:      make(map[uuid.UUID]ChecklistItem),
		calls:      make(map[string]int),
	}
}

var _ Store = (*memStore)(nil)

func (s *memStore) record(op string) error {
	s.calls[op]++
	return s.failWith
}

func (s *memStore) callCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *memStore) ListChecklists(ctx context.Context) ([]*Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListChecklists"); err != nil {
		return nil, err
	}

	out := make([]*Checklist, 0, len(s.checklists))
	for _, c := range s.checklists {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *memStore) GetChecklist(ctx context.Context, id uuid.UUID) (*Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("GetChecklist"); err != nil {
		return nil, err
	}

	c, ok := s.checklists[id]
	if !ok {
		return nil, checklistNotFound(id)
	}
	return &c, nil
}

func (s *memStore) CreateChecklist(ctx context.Context, checklist *Checklist) (*Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CreateChecklist"); err != nil {
		return nil, err
	}

	s.checklists[checklist.ID] = *checklist
	c := *checklist
	return &c, nil
}

func (s *memStore) UpdateChecklist(ctx context.Context, checklist *Checklist) (*Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("UpdateChecklist"); err != nil {
		return nil, err
	}

	s.checklists[checklist.ID] = *checklist
	c := *checklist
	return &c, nil
}

func (s *memStore) DeleteChecklist(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("DeleteChecklist"); err != nil {
		return err
	}

	delete(s.checklists, id)
	for itemID, item := range s.items {
		if item.ChecklistID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

func (s *memStore) ListItems(ctx context.Context, checklistID uuid.UUID) ([]*ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListItems"); err != nil {
		return nil, err
	}

	out := make([]*ChecklistItem, 0)
	for _, item := range s.items {
		if item.ChecklistID == checklistID {
			item := item
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) GetItem(ctx context.Context, id uuid.UUID) (*ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("GetItem"); err != nil {
		return nil, err
	}

	item, ok := s.items[id]
	if !ok {
		return nil, itemNotFound(id)
	}
	return &item, nil
}

func (s *memStore) CreateItem(ctx context.Context, item *ChecklistItem) (*ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CreateItem"); err != nil {
		return nil, err
	}

	s.items[item.ID] = *item
	i := *item
	return &i, nil
}

func (s *memStore) UpdateItem(ctx context.Context, item *ChecklistItem) (*ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("UpdateItem"); err != nil {
		return nil, err
	}

	s.items[item.ID] = *item
	i := *item
	return &i, nil
}

func (s *memStore) DeleteItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("DeleteItem"); err != nil {
		return err
	}

	if _, ok := s.items[id]; !ok {
		return errors.New("item not found")
	}
	delete(s.items, id)
	return nil
}

func (s *memStore) ResetItems(ctx context.Context, checklistID uuid.UUID, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ResetItems"); err != nil {
		return 0, err
	}

	n := 0
	for id, item := range s.items {
		if item.ChecklistID == checklistID && item.Checked {
			item.Checked = false
			item.UpdatedAt = at
			s.items[id] = item
			n++
		}
	}
	return n, nil
}
