// Package httpapi exposes the JSON surface: registration, login, owner-scoped
// task CRUD behind bearer auth, and the natural-language task extraction
// endpoint.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minhtran/taskkeeper/internal/logging"
	"github.com/minhtran/taskkeeper/internal/nlp"
	"github.com/minhtran/taskkeeper/internal/server/models"
	"github.com/minhtran/taskkeeper/internal/server/services"
)

// Handler carries the request handlers' dependencies. The clock is
// injectable so tests can pin the extraction reference time.
type Handler struct {
	users     *services.UserService
	tasks     *services.TaskService
	extractor nlp.Extractor
	logger    logging.Logger
	now       func() time.Time
}

func NewHandler(users *services.UserService, tasks *services.TaskService, extractor nlp.Extractor, logger logging.Logger) *Handler {
	return &Handler{
		users:     users,
		tasks:     tasks,
		extractor: extractor,
		logger:    logger.With("module", "httpapi"),
		now:       time.Now,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handler) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.users.RequestCode(r.Context(), req.Email, req.Password); err != nil {
		h.logger.Warn(r.Context(), "Registration code request failed", "error", err.Error())
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.users.VerifyCode(r.Context(), req.Email, req.OTP); err != nil {
		h.logger.Warn(r.Context(), "Code verification failed", "error", err.Error())
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "Login failed", "email", req.Email, "error", err.Error())
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"token": result.Token,
		"email": result.Email,
	})
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	tasks, err := h.tasks.List(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error(r.Context(), "Failed to list tasks", "error", err.Error())
		respondServiceError(w, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req struct {
		Title       string     `json:"title"`
		Description *string    `json:"description"`
		Deadline    *time.Time `json:"deadline"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), identity.UserID, req.Title, req.Description, req.Deadline)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": task.ID})
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Deadline    *time.Time `json:"deadline"`
		Completed   *bool      `json:"completed"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	patch := models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Completed:   req.Completed,
	}

	if err := h.tasks.Update(r.Context(), identity.UserID, chi.URLParam(r, "id"), patch); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if err := h.tasks.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleExtractTask is best-effort: any extractor failure degrades to the raw
// text as the title, never an error status.
func (h *Handler) handleExtractTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := h.extractor.Extract(r.Context(), text, h.now())
	if err != nil {
		h.logger.Warn(r.Context(), "Task extraction failed, falling back to raw text", "error", err.Error())
		result = &nlp.Extraction{Title: text}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"title":    result.Title,
		"deadline": result.Deadline,
	})
}
