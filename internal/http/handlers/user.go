package handlers

import (
	"net/http"

	"estagio/internal/app"
	"estagio/internal/domain/user"
	"estagio/internal/http/middleware"
	"estagio/internal/http/response"
)

type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateProfileRequest struct {
	FullName  *string `json:"nome_completo"`
	Phone     *string `json:"numero"`
	BirthDate *string `json:"data_nascimento"`
	PhotoURL  *string `json:"foto_perfil"`
	Email     *string `json:"email" validate:"omitempty,email"`
	CPF       *string `json:"cpf"`
	Course    *string `json:"curso"`
	Term      *int    `json:"periodo" validate:"omitempty,gte=1"`
	Matricula *string `json:"matricula"`

	OldPassword        string `json:"senha_antiga"`
	NewPassword        string `json:"nova_senha"`
	ConfirmNewPassword string `json:"confirmar_nova_senha"`
}

type settingsRequest struct {
	Theme              string `json:"tema" validate:"required"`
	EmailNotifications bool   `json:"notificacoesEmail"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	profile, err := h.users.UpdateProfile(r.Context(), userID, app.UpdateProfileInput{
		FullName:           req.FullName,
		Phone:              req.Phone,
		BirthDate:          req.BirthDate,
		PhotoURL:           req.PhotoURL,
		Email:              req.Email,
		CPF:                req.CPF,
		Course:             req.Course,
		Term:               req.Term,
		Matricula:          req.Matricula,
		OldPassword:        req.OldPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	settings, err := h.users.UpdateSettings(r.Context(), userID, user.Settings{
		Theme:              req.Theme,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, settings)
}

func (h *UserHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	profile, err := h.users.GetStudent(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

func (h *UserHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.users.ListStudents(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, students)
}
