package handlers

import (
	"net/http"
	"strings"
	"time"

	"estagio/internal/app"
	"estagio/internal/common"
	"estagio/internal/domain/application"
	"estagio/internal/http/middleware"
	"estagio/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	PostingID string `json:"vaga_id" validate:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	postingID, err := common.ParseUUID(strings.TrimSpace(req.PostingID))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"vaga_id": "must be a valid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + studentID.String()
		if !h.limiter.Allow(key, 5, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), studentID, postingID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListMine(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// GetMineForPosting tells the posting detail page whether the student already
// applied. Not having applied surfaces as the not-found envelope.
func (h *ApplicationHandler) GetMineForPosting(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	postingID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.GetMineForPosting(r.Context(), studentID, postingID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ApplicationHandler) ListForPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListForPosting(r.Context(), postingID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.SetStatus(r.Context(), applicationID, application.NormalizeStatus(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
