package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"maistorBack/internal/models"
	"maistorBack/internal/services"
)

type TaskHandler struct {
	Service  *services.TaskService
	ErrorLog *log.Logger
}

// viewerID returns the authenticated user id placed in the request context by
// the auth middleware, or "" for anonymous requests.
func viewerID(r *http.Request) string {
	if v, ok := r.Context().Value("user_id").(string); ok {
		return v
	}
	return ""
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	params := models.TaskQueryParams{
		Page:         qs.Get("page"),
		Limit:        qs.Get("limit"),
		Status:       qs.Get("status"),
		Category:     qs.Get("category"),
		Subcategory:  qs.Get("subcategory"),
		City:         qs.Get("city"),
		Neighborhood: qs.Get("neighborhood"),
		IsUrgent:     qs.Get("isUrgent"),
		BudgetMin:    qs.Get("budgetMin"),
		BudgetMax:    qs.Get("budgetMax"),
		SortBy:       qs.Get("sortBy"),
		Mode:         qs.Get("mode"),
	}

	resp, err := h.Service.ListTasks(r.Context(), params, viewerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	opts := models.SearchOptions{
		Status:   qs.Get("status"),
		City:     qs.Get("city"),
		Category: qs.Get("category"),
	}
	if limitStr := qs.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			opts.Limit = limit
		}
	}

	results, err := h.Service.SearchTasks(r.Context(), qs.Get("q"), opts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if results == nil {
		results = []models.TaskSearchResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	idOrSlug := getParam(r, "idOrSlug")
	if idOrSlug == "" {
		http.Error(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	detail, err := h.Service.GetTaskDetail(r.Context(), idOrSlug, viewerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID := viewerID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input models.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateTask(r.Context(), input, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID := viewerID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	var input models.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateTask(r.Context(), id, input, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := viewerID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.CancelTask(r.Context(), id, userID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps service errors to HTTP status codes. Database details never
// reach the client.
func (h *TaskHandler) writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		msg := verr.Message
		if verr.Field != "" {
			msg = verr.Field + ": " + verr.Message
		}
		http.Error(w, strings.TrimSpace(msg), http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, models.ErrTaskNotFound), errors.Is(err, models.ErrCustomerNotFound):
		http.Error(w, "Task not found", http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, models.ErrSlugConflict):
		http.Error(w, "Could not allocate a unique slug", http.StatusConflict)
	default:
		if h.ErrorLog != nil {
			h.ErrorLog.Printf("task handler: %v", err)
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
