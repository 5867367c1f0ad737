package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"estagio/internal/app"
	"estagio/internal/common"
	"estagio/internal/domain/document"
	"estagio/internal/http/middleware"
	"estagio/internal/http/response"
)

const maxUploadBytes = 10 << 20

type DocumentHandler struct {
	documents *app.DocumentService
}

func NewDocumentHandler(documents *app.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, common.NewValidationError("invalid upload", map[string]string{"arquivo": "multipart form up to 10MB is required"}))
		return
	}
	docType := document.Type(strings.ToUpper(strings.TrimSpace(r.FormValue("tipo"))))
	file, header, err := r.FormFile("arquivo")
	if err != nil {
		response.Error(w, common.NewValidationError("missing file", map[string]string{"arquivo": "file is required"}))
		return
	}
	defer file.Close()

	doc, created, err := h.documents.Upload(r.Context(), ownerID, docType, header.Filename, file)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, doc)
}

func (h *DocumentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.documents.ListMine(r.Context(), ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	documentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.documents.Delete(r.Context(), documentID, requesterID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"mensagem": "documento removido"})
}

// Download streams the stored file back under its original name.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	documentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	doc, file, err := h.documents.Open(r.Context(), documentID, requesterID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.OriginalName))
	http.ServeContent(w, r, doc.OriginalName, doc.UploadedAt, file)
}
