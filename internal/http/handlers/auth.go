package handlers

import (
	"net/http"
	"strings"
	"time"

	"estagio/internal/app"
	"estagio/internal/common"
	"estagio/internal/domain/user"
	"estagio/internal/http/middleware"
	"estagio/internal/http/response"
)

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type registerRequest struct {
	FullName        string `json:"nome_completo" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"senha" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmar_senha" validate:"required"`
	Phone           string `json:"numero"`
	BirthDate       string `json:"data_nascimento"`
	CPF             string `json:"cpf" validate:"required"`
	Course          string `json:"curso"`
	Term            int    `json:"periodo" validate:"omitempty,gte=1"`
	Matricula       string `json:"matricula"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  user.Profile `json:"usuario"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	profile, err := h.auth.Register(r.Context(), app.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		BirthDate:       req.BirthDate,
		CPF:             req.CPF,
		Course:          req.Course,
		Term:            req.Term,
		Matricula:       req.Matricula,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, profile)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		ipKey := "login:ip:" + middleware.ClientIP(r)
		if !h.limiter.Allow(ipKey, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "login rate limit exceeded", nil))
			return
		}
		emailKey := "login:email:" + strings.ToLower(strings.TrimSpace(req.Email))
		if !h.limiter.Allow(emailKey, 5, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "login rate limit exceeded", nil))
			return
		}
	}
	token, profile, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, loginResponse{Token: token, User: *profile})
}
