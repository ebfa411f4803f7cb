package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-pipeline-cache/internal/checklists"
	"github.com/goliatone/go-pipeline-cache/pipeline"
)

type titleBody struct {
	Title string `json:"title"`
}

func (rt *Router) decodeTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body titleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rt.badRequest(w, r, "request body must be a JSON object with a title")
		return "", false
	}
	return body.Title, true
}

// GET /api/checklists
func (rt *Router) listChecklists(w http.ResponseWriter, r *http.Request) {
	result, err := pipeline.Send[[]checklists.ChecklistDTO](r.Context(), rt.sender, checklists.GetAllChecklists{})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if result == nil {
		result = []checklists.ChecklistDTO{}
	}
	writeJSON(w, http.StatusOK, result)
}

// POST /api/checklists
func (rt *Router) createChecklist(w http.ResponseWriter, r *http.Request) {
	title, ok := rt.decodeTitle(w, r)
	if !ok {
		return
	}

	result, err := pipeline.Send[checklists.ChecklistDTO](r.Context(), rt.sender, checklists.CreateChecklist{Title: title})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/checklists/%s", result.ID))
	writeJSON(w, http.StatusCreated, result)
}

// GET /api/checklists/{id}
func (rt *Router) getChecklist(w http.ResponseWriter, r *http.Request) {
	query := checklists.GetChecklistByID{ID: chi.URLParam(r, "id")}

	result, err := pipeline.Send[*checklists.ChecklistDTO](r.Context(), rt.sender, query)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if result == nil {
		rt.notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PUT /api/checklists/{id}
func (rt *Router) updateChecklist(w http.ResponseWriter, r *http.Request) {
	title, ok := rt.decodeTitle(w, r)
	if !ok {
		return
	}

	cmd := checklists.UpdateChecklist{ID: chi.URLParam(r, "id"), Title: title}
	result, err := pipeline.Send[checklists.ChecklistDTO](r.Context(), rt.sender, cmd)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DELETE /api/checklists/{id}
func (rt *Router) deleteChecklist(w http.ResponseWriter, r *http.Request) {
	cmd := checklists.DeleteChecklist{ID: chi.URLParam(r, "id")}
	if _, err := rt.sender.Send(r.Context(), cmd); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/checklists/{id}/items
func (rt *Router) listItems(w http.ResponseWriter, r *http.Request) {
	query := checklists.GetChecklistItems{ChecklistID: chi.URLParam(r, "id")}

	result, err := pipeline.Send[[]checklists.ChecklistItemDTO](r.Context(), rt.sender, query)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if result == nil {
		result = []checklists.ChecklistItemDTO{}
	}
	writeJSON(w, http.StatusOK, result)
}

// POST /api/checklists/{id}/items
func (rt *Router) createItem(w http.ResponseWriter, r *http.Request) {
	title, ok := rt.decodeTitle(w, r)
	if !ok {
		return
	}

	cmd := checklists.CreateChecklistItem{ChecklistID: chi.URLParam(r, "id"), Title: title}
	result, err := pipeline.Send[checklists.ChecklistItemDTO](r.Context(), rt.sender, cmd)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/items/%s", result.ID))
	writeJSON(w, http.StatusCreated, result)
}

// PATCH /api/checklists/{id}/reset
func (rt *Router) resetItems(w http.ResponseWriter, r *http.Request) {
	cmd := checklists.ResetChecklistItems{ChecklistID: chi.URLParam(r, "id")}
	if _, err := rt.sender.Send(r.Context(), cmd); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/items/{id}
func (rt *Router) updateItem(w http.ResponseWriter, r *http.Request) {
	title, ok := rt.decodeTitle(w, r)
	if !ok {
		return
	}

	cmd := checklists.UpdateChecklistItem{ID: chi.URLParam(r, "id"), Title: title}
	result, err := pipeline.Send[checklists.ChecklistItemDTO](r.Context(), rt.sender, cmd)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PATCH /api/items/{id}/toggle
func (rt *Router) toggleItem(w http.ResponseWriter, r *http.Request) {
	cmd := checklists.ToggleChecklistItem{ID: chi.URLParam(r, "id")}
	result, err := pipeline.Send[checklists.ChecklistItemDTO](r.Context(), rt.sender, cmd)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DELETE /api/items/{id}
func (rt *Router) deleteItem(w http.ResponseWriter, r *http.Request) {
	cmd := checklists.DeleteChecklistItem{ID: chi.URLParam(r, "id")}
	if _, err := rt.sender.Send(r.Context(), cmd); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
