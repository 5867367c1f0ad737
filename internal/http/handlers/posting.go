package handlers

import (
	"net/http"
	"strings"
	"time"

	"estagio/internal/app"
	"estagio/internal/common"
	"estagio/internal/domain/posting"
	"estagio/internal/http/middleware"
	"estagio/internal/http/response"
)

type PostingHandler struct {
	postings *app.PostingService
}

func NewPostingHandler(postings *app.PostingService) *PostingHandler {
	return &PostingHandler{postings: postings}
}

type postingRequest struct {
	Title          string `json:"titulo" validate:"required"`
	Description    string `json:"descricao" validate:"required"`
	Company        string `json:"empresa" validate:"required"`
	Location       string `json:"local" validate:"required"`
	Stipend        string `json:"bolsa"`
	WeeklyHours    int    `json:"carga_horaria" validate:"omitempty,gte=1"`
	Requirements   string `json:"requisitos"`
	Benefits       string `json:"beneficios"`
	OpensAt        string `json:"data_abertura" validate:"required"`
	ClosesAt       string `json:"data_encerramento" validate:"required"`
	Active         *bool  `json:"ativa"`
	RequiredCourse string `json:"curso_requerido"`
	MinTerm        int    `json:"periodo_minimo" validate:"omitempty,gte=1"`
	Shift          string `json:"turno"`
	ImageURL       string `json:"imagem"`
	NoticeURL      string `json:"link_edital"`
}

func (req *postingRequest) toPosting() (posting.Posting, error) {
	opensAt, err := parseDate(req.OpensAt)
	if err != nil {
		return posting.Posting{}, common.NewValidationError("invalid opening date", map[string]string{"data_abertura": "date must be YYYY-MM-DD"})
	}
	closesAt, err := parseDate(req.ClosesAt)
	if err != nil {
		return posting.Posting{}, common.NewValidationError("invalid closing date", map[string]string{"data_encerramento": "date must be YYYY-MM-DD"})
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return posting.Posting{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Company:        strings.TrimSpace(req.Company),
		Location:       strings.TrimSpace(req.Location),
		Stipend:        req.Stipend,
		WeeklyHours:    req.WeeklyHours,
		Requirements:   req.Requirements,
		Benefits:       req.Benefits,
		OpensAt:        opensAt,
		ClosesAt:       closesAt,
		Active:         active,
		RequiredCourse: req.RequiredCourse,
		MinTerm:        req.MinTerm,
		Shift:          req.Shift,
		ImageURL:       req.ImageURL,
		NoticeURL:      req.NoticeURL,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(value), time.UTC)
}

func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req postingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	p, err := req.toPosting()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.postings.Create(r.Context(), p, technicianID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *PostingHandler) Update(w http.ResponseWriter, r *http.Request) {
	postingID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req postingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	p, err := req.toPosting()
	if err != nil {
		response.Error(w, err)
		return
	}
	p.ID = postingID
	updated, err := h.postings.Update(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
	postingID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	detail, err := h.postings.Get(r.Context(), postingID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, detail)
}

func (h *PostingHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	items, err := h.postings.ListOpen(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PostingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.postings.ListMine(r.Context(), technicianID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PostingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postingID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.postings.Delete(r.Context(), postingID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"mensagem": "vaga removida"})
}
