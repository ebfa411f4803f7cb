package checklists

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-pipeline-cache/pipeline"
	"github.com/goliatone/go-pipeline-cache/querycache"
)

// Handlers implements every checklist request. Handlers never touch the
// cache; the caching behavior acts on the policies the requests declare.
type Handlers struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

func NewHandlers(store Store, logger *zap.Logger, opts ...Option) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handlers{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register binds every checklist request to its handler on m.
func Register(m *pipeline.Mediator, h *Handlers) {
	pipeline.RegisterHandler(m, h.GetAllChecklists)
	pipeline.RegisterHandler(m, h.GetChecklistByID)
	pipeline.RegisterHandler(m, h.GetChecklistItems)
	pipeline.RegisterHandler(m, h.CreateChecklist)
	pipeline.RegisterHandler(m, h.UpdateChecklist)
	pipeline.RegisterHandler(m, h.DeleteChecklist)
	pipeline.RegisterHandler(m, h.FlushChecklists)
	pipeline.RegisterHandler(m, h.CreateChecklistItem)
	pipeline.RegisterHandler(m, h.UpdateChecklistItem)
	pipeline.RegisterHandler(m, h.ToggleChecklistItem)
	pipeline.RegisterHandler(m, h.DeleteChecklistItem)
	pipeline.RegisterHandler(m, h.ResetChecklistItems)
}

func (h *Handlers) GetAllChecklists(ctx context.Context, _ GetAllChecklists) ([]ChecklistDTO, error) {
	records, err := h.store.ListChecklists(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]ChecklistDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toChecklistDTO(record))
	}
	return dtos, nil
}

// GetChecklistByID returns nil without an error when the checklist does not
// exist, so the absence is cached like any other response.
func (h *Handlers) GetChecklistByID(ctx context.Context, q GetChecklistByID) (*ChecklistDTO, error) {
	id, err := parseID("id", q.ID)
	if err != nil {
		return nil, err
	}

	record, err := h.store.GetChecklist(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	dto := toChecklistDTO(record)
	return &dto, nil
}

func (h *Handlers) GetChecklistItems(ctx context.Context, q GetChecklistItems) ([]ChecklistItemDTO, error) {
	checklistID, err := parseID("checklistId", q.ChecklistID)
	if err != nil {
		return nil, err
	}

	records, err := h.store.ListItems(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ChecklistItemDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toItemDTO(record))
	}
	return dtos, nil
}

func (h *Handlers) CreateChecklist(ctx context.Context, c CreateChecklist) (ChecklistDTO, error) {
	now := h.now()
	record, err := h.store.CreateChecklist(ctx, &Checklist{
		ID:        uuid.New(),
		Title:     c.Title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return ChecklistDTO{}, err
	}

	h.logger.Info("checklist created", zap.String("checklist_id", record.ID.String()))
	return toChecklistDTO(record), nil
}

func (h *Handlers) UpdateChecklist(ctx context.Context, c UpdateChecklist) (ChecklistDTO, error) {
	id, err := parseID("id", c.ID)
	if err != nil {
		return ChecklistDTO{}, err
	}

	record, err := h.store.GetChecklist(ctx, id)
	if err != nil {
		return ChecklistDTO{}, err
	}

	record.Title = c.Title
	record.UpdatedAt = h.now()

	record, err = h.store.UpdateChecklist(ctx, record)
	if err != nil {
		return ChecklistDTO{}, err
	}
	return toChecklistDTO(record), nil
}

func (h *Handlers) DeleteChecklist(ctx context.Context, c DeleteChecklist) (bool, error) {
	id, err := parseID("id", c.ID)
	if err != nil {
		return false, err
	}

	if _, err := h.store.GetChecklist(ctx, id); err != nil {
		return false, err
	}
	if err := h.store.DeleteChecklist(ctx, id); err != nil {
		return false, err
	}

	h.logger.Info("checklist deleted", zap.String("checklist_id", id.String()))
	return true, nil
}

// FlushChecklists has no work of its own; its policy does the flushing.
func (h *Handlers) FlushChecklists(ctx context.Context, _ FlushChecklists) (bool, error) {
	h.logger.Info("flushing checklist cache")
	return true, nil
}

func (h *Handlers) CreateChecklistItem(ctx context.Context, c CreateChecklistItem) (ChecklistItemDTO, error) {
	checklistID, err := parseID("checklistId", c.ChecklistID)
	if err != nil {
		return ChecklistItemDTO{}, err
	}

	if _, err := h.store.GetChecklist(ctx, checklistID); err != nil {
		return ChecklistItemDTO{}, err
	}

	now := h.now()
	record, err := h.store.CreateItem(ctx, &ChecklistItem{
		ID:          uuid.New(),
		ChecklistID: checklistID,
		Title:       c.Title,
		Checked:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return ChecklistItemDTO{}, err
	}
	return toItemDTO(record), nil
}

func (h *Handlers) UpdateChecklistItem(ctx context.Context, c UpdateChecklistItem) (ChecklistItemDTO, error) {
	return h.changeItem(ctx, c.ID, func(item *ChecklistItem) {
		item.Title = c.Title
	})
}

func (h *Handlers) ToggleChecklistItem(ctx context.Context, c ToggleChecklistItem) (ChecklistItemDTO, error) {
	return h.changeItem(ctx, c.ID, func(item *ChecklistItem) {
		item.Checked = !item.Checked
	})
}

// changeItem loads an item, applies change and saves it, queueing the
// parent checklist's items key for invalidation.
func (h *Handlers) changeItem(ctx context.Context, rawID string, change func(*ChecklistItem)) (ChecklistItemDTO, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return ChecklistItemDTO{}, err
	}

	record, err := h.store.GetItem(ctx, id)
	if err != nil {
		return ChecklistItemDTO{}, err
	}

	change(record)
	record.UpdatedAt = h.now()

	record, err = h.store.UpdateItem(ctx, record)
	if err != nil {
		return ChecklistItemDTO{}, err
	}

	querycache.InvalidateLater(ctx, ItemsKey(record.ChecklistID.String()))
	return toItemDTO(record), nil
}

func (h *Handlers) DeleteChecklistItem(ctx context.Context, c DeleteChecklistItem) (bool, error) {
	id, err := parseID("id", c.ID)
	if err != nil {
		return false, err
	}

	record, err := h.store.GetItem(ctx, id)
	if err != nil {
		return false, err
	}
	if err := h.store.DeleteItem(ctx, id); err != nil {
		return false, err
	}

	querycache.InvalidateLater(ctx, ItemsKey(record.ChecklistID.String()))
	return true, nil
}

func (h *Handlers) ResetChecklistItems(ctx context.Context, c ResetChecklistItems) (int, error) {
	checklistID, err := parseID("checklistId", c.ChecklistID)
	if err != nil {
		return 0, err
	}

	if _, err := h.store.GetChecklist(ctx, checklistID); err != nil {
		return 0, err
	}

	n, err := h.store.ResetItems(ctx, checklistID, h.now())
	if err != nil {
		return 0, err
	}

	h.logger.Info("checklist items reset",
		zap.String("checklist_id", checklistID.String()),
		zap.Int("count", n))
	return n, nil
}
