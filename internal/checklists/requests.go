package checklists

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/goliatone/go-pipeline-cache/cache"
	"github.com/goliatone/go-pipeline-cache/querycache"
)

// Resource is the first segment of every checklist cache key.
const Resource = "checklists"

// Pattern groups every checklist cache key in the registry.
var Pattern = cache.ExtractPattern(AllChecklistsKey)

// AllChecklistsKey caches the checklist listing.
var AllChecklistsKey = cache.Key(Resource, "all")

// ChecklistKey is the cache key of a single checklist.
func ChecklistKey(id string) string {
	return cache.Key(Resource, canonicalID(id))
}

// ItemsKey is the cache key of a checklist's items.
func ItemsKey(checklistID string) string {
	return cache.Key(Resource, canonicalID(checklistID), "items")
}

// canonicalID keeps keys stable for differently cased spellings of the
// same UUID. Invalid ids are left as they are and fail validation.
func canonicalID(raw string) string {
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return raw
}

const maxTitleLength = 200

var notBlank = validation.NewStringRule(func(s string) bool {
	return strings.TrimSpace(s) != ""
}, "cannot be blank")

func titleRules(title *string) *validation.FieldRules {
	return validation.Field(title, validation.Required, notBlank, validation.RuneLength(1, maxTitleLength))
}

func idRules(id *string) *validation.FieldRules {
	return validation.Field(id, validation.Required, is.UUID)
}

// --- Queries

type GetAllChecklists struct{}

func (GetAllChecklists) CachePolicy() querycache.Policy {
	return querycache.Cacheable{Key: AllChecklistsKey}
}

type GetChecklistByID struct {
	ID string `json:"id"`
}

func (q GetChecklistByID) CachePolicy() querycache.Policy {
	return querycache.Cacheable{Key: ChecklistKey(q.ID)}
}

func (q GetChecklistByID) Validate() error {
	return validation.ValidateStruct(&q, idRules(&q.ID))
}

type GetChecklistItems struct {
	ChecklistID string `json:"checklistId"`
}

func (q GetChecklistItems) CachePolicy() querycache.Policy {
	return querycache.Cacheable{Key: ItemsKey(q.ChecklistID)}
}

func (q GetChecklistItems) Validate() error {
	return validation.ValidateStruct(&q, idRules(&q.ChecklistID))
}

// --- Checklist commands

type CreateChecklist struct {
	Title string `json:"title"`
}

func (CreateChecklist) CachePolicy() querycache.Policy {
	return querycache.Evict(AllChecklistsKey)
}

func (c CreateChecklist) Validate() error {
	return validation.ValidateStruct(&c, titleRules(&c.Title))
}

type UpdateChecklist struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (c UpdateChecklist) CachePolicy() querycache.Policy {
	return querycache.Evict(ChecklistKey(c.ID), AllChecklistsKey)
}

func (c UpdateChecklist) Validate() error {
	return validation.ValidateStruct(&c, idRules(&c.ID), titleRules(&c.Title))
}

type DeleteChecklist struct {
	ID string `json:"id"`
}

func (c DeleteChecklist) CachePolicy() querycache.Policy {
	return querycache.Evict(ChecklistKey(c.ID), ItemsKey(c.ID), AllChecklistsKey)
}

func (c DeleteChecklist) Validate() error {
	return validation.ValidateStruct(&c, idRules(&c.ID))
}

// FlushChecklists drops every cached checklist response.
type FlushChecklists struct{}

func (FlushChecklists) CachePolicy() querycache.Policy {
	return querycache.Evict(querycache.PatternTarget(Pattern))
}

// --- Item commands
//
// Commands addressing an item by its own id cannot name the parent's items
// key up front; their handlers add it once the item is loaded.

type CreateChecklistItem struct {
	ChecklistID string `json:"checklistId"`
	Title       string `json:"title"`
}

func (c CreateChecklistItem) CachePolicy() querycache.Policy {
	return querycache.Evict(ItemsKey(c.ChecklistID))
}

func (c CreateChecklistItem) Validate() error {
	return validation.ValidateStruct(&c, idRules(&c.ChecklistID), titleRules(&c.Title))
}

type UpdateChecklistItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (UpdateChecklistItem) CachePolicy() querycache.Policy {
	return querycache.Evict()
}

func (c UpdateChecklistItem) Validate() error {
	return validation.ValidateStruct(&c, idRules(&c.ID), titleRules(&c.Title))
}

type ToggleChecklistItem struct {
	ID string `json:"id"`
}

func (ToggleChecklistItem) CachePolicy() querycache.Policy {
	return querycache.Evict()
}

func (c ToggleChecklistItem) Validate() error {
	return validation.ValidateStruct(&c, idRules(&c.ID))
}

type DeleteChecklistItem struct {
	ID string `json:"id"`
}

func (DeleteChecklistItem) CachePolicy() querycache.Policy {
	return querycache.Evict()
}

func (c DeleteChecklistItem) Validate() error {
	return validation.ValidateStruct(&c, idRules(&c.ID))
}

// ResetChecklistItems unchecks every item of a checklist.
type ResetChecklistItems struct {
	ChecklistID string `json:"checklistId"`
}

func (c ResetChecklistItems) CachePolicy() querycache.Policy {
	return querycache.Evict(ItemsKey(c.ChecklistID))
}

func (c ResetChecklistItems) Validate() error {
	return validation.ValidateStruct(&c, idRules(&c.ChecklistID))
}
