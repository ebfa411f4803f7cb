package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"go.uber.org/zap"
)

// Problem is an RFC 7807 error body.
type Problem struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	p.Instance = r.URL.Path
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}

func (rt *Router) notFound(w http.ResponseWriter, r *http.Request) {
	writeProblem(w, r, Problem{
		Type:   "https://tools.ietf.org/html/rfc7807#section-6.5.4",
		Title:  "Resource not found",
		Status: http.StatusNotFound,
	})
}

func (rt *Router) badRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, Problem{
		Type:   "https://tools.ietf.org/html/rfc7807#section-6.5.1",
		Title:  "Malformed request",
		Status: http.StatusBadRequest,
		Detail: detail,
	})
}

// writeError maps a pipeline error to a problem response by its go-errors
// category: validation 400, not found 404, anything else 500.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var goErr *goerrors.Error
	category := goerrors.CategoryInternal
	if errors.As(err, &goErr) {
		category = goErr.Category
	}

	switch category {
	case goerrors.CategoryValidation:
		rt.logger.Warn("validation failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeProblem(w, r, Problem{
			Type:   "https://tools.ietf.org/html/rfc7807#section-6.5.1",
			Title:  "One or more validation errors occurred",
			Status: http.StatusBadRequest,
			Detail: err.Error(),
			Errors: fieldErrors(err),
		})
	case goerrors.CategoryNotFound:
		writeProblem(w, r, Problem{
			Type:   "https://tools.ietf.org/html/rfc7807#section-6.5.4",
			Title:  "Resource not found",
			Status: http.StatusNotFound,
			Detail: err.Error(),
		})
	default:
		rt.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeProblem(w, r, Problem{
			Type:   "https://tools.ietf.org/html/rfc7807#section-6.6.1",
			Title:  "An error occurred while processing your request",
			Status: http.StatusInternalServerError,
		})
	}
}

func fieldErrors(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}

	out := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		out[field] = fieldErr.Error()
	}
	return out
}
