package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"villamarket/internal/app"
	"villamarket/internal/domain"
)

type OTPHandlers struct {
	S *app.OTPService
	V *validator.Validate
}

func NewOTPHandlers(s *app.OTPService) *OTPHandlers {
	return &OTPHandlers{S: s, V: validator.New()}
}

func (s *Server) MountOTPHandlers(h *OTPHandlers) {
	s.MountRoot("OTP Service")
	s.mux.Post("/otp/generate", h.generate)
	s.mux.Post("/otp/validate", h.validate)
}

type otpGenerateRequest struct {
	Phone string `json:"phone_number" validate:"required"`
}

type otpValidateRequest struct {
	Phone string `json:"phone_number" validate:"required"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}

func (h *OTPHandlers) generate(w http.ResponseWriter, r *http.Request) {
	var req otpGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.V.Struct(req); err != nil {
		writeError(w, domain.Wrap(domain.KindInvalid, "invalid otp payload", err))
		return
	}
	code, err := h.S.Generate(r.Context(), req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	// The code is returned in the response body; a production
	// deployment would hand it to an SMS provider instead.
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP generated", "otp": code})
}

func (h *OTPHandlers) validate(w http.ResponseWriter, r *http.Request) {
	var req otpValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.V.Struct(req); err != nil {
		writeError(w, domain.Wrap(domain.KindInvalid, "invalid otp payload", err))
		return
	}
	if err := h.S.Validate(r.Context(), req.Phone, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP validated"})
}
