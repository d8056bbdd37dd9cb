package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"villamarket/internal/app"
	"villamarket/internal/domain"
)

type UserHandlers struct {
	S *app.UserService
	V *validator.Validate
}

func NewUserHandlers(s *app.UserService) *UserHandlers {
	return &UserHandlers{S: s, V: validator.New()}
}

func (s *Server) MountUserHandlers(h *UserHandlers) {
	s.MountRoot("User Service")
	s.mux.Post("/auth/register", h.register)
	s.mux.Post("/auth/login", h.login)
	s.mux.Get("/users/profile", h.profile)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone_number" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.V.Struct(req); err != nil {
		writeError(w, domain.Wrap(domain.KindInvalid, "invalid registration payload", err))
		return
	}
	u, err := h.S.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.V.Struct(req); err != nil {
		writeError(w, domain.Wrap(domain.KindInvalid, "invalid login payload", err))
		return
	}
	token, err := h.S.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (h *UserHandlers) profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.S.Profile(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
