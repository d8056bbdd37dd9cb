package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"villamarket/internal/app"
	"villamarket/internal/domain"
)

type ReservationHandlers struct {
	S *app.ReservationService
	V *validator.Validate
}

func NewReservationHandlers(s *app.ReservationService) *ReservationHandlers {
	return &ReservationHandlers{S: s, V: validator.New()}
}

func (s *Server) MountReservationHandlers(h *ReservationHandlers) {
	s.MountRoot("Reservation Service")
	s.mux.Post("/reservations", h.create)
	s.mux.Get("/reservations", h.list)
	s.mux.Get("/reservations/{id}", h.get)
}

type reservationRequest struct {
	VillaID      int64       `json:"villa_id" validate:"required,gt=0"`
	CheckInDate  domain.Date `json:"check_in_date"`
	CheckOutDate domain.Date `json:"check_out_date"`
	PeopleCount  int         `json:"people_count" validate:"required,gt=0"`
}

func (h *ReservationHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.V.StructPartial(req, "VillaID", "PeopleCount"); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "check_in_date and check_out_date are required")
		return
	}

	rv, err := h.S.CreateReservation(r.Context(), bearerToken(r),
		req.VillaID, req.CheckInDate, req.CheckOutDate, req.PeopleCount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *ReservationHandlers) list(w http.ResponseWriter, r *http.Request) {
	rows, err := h.S.ListReservations(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReservationHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	rv, err := h.S.GetReservation(r.Context(), bearerToken(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}
