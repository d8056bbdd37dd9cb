package httpserver

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"villamarket/internal/app"
	"villamarket/internal/domain"
)

const maxImageBytes = 16 << 20

type VillaHandlers struct {
	S *app.VillaService
	V *validator.Validate
}

func NewVillaHandlers(s *app.VillaService) *VillaHandlers {
	return &VillaHandlers{S: s, V: validator.New()}
}

func (s *Server) MountVillaHandlers(h *VillaHandlers) {
	s.MountRoot("Villa Service")
	s.mux.Post("/villas", h.create)
	s.mux.Put("/villas/{id}", h.update)
	s.mux.Delete("/villas/{id}", h.delete)
	s.mux.Get("/villas", h.list)
	s.mux.Get("/villas/{id}", h.get)
}

// villaPayload mirrors domain.VillaAttributes with validation tags;
// requests carry it as a JSON form part named "villa" next to the image.
type villaPayload struct {
	Title             string  `json:"title" validate:"required"`
	City              string  `json:"city" validate:"required"`
	Address           string  `json:"address" validate:"required"`
	BaseCapacity      int     `json:"base_capacity" validate:"required,gt=0"`
	MaximumCapacity   int     `json:"maximum_capacity" validate:"required,gtefield=BaseCapacity"`
	Area              float64 `json:"area" validate:"gte=0"`
	BedCount          int     `json:"bed_count" validate:"gte=0"`
	HasPool           bool    `json:"has_pool"`
	HasCoolingSystem  bool    `json:"has_cooling_system"`
	BasePricePerNight float64 `json:"base_price_per_night" validate:"required,gt=0"`
	ExtraPersonPrice  float64 `json:"extra_person_price" validate:"gte=0"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=5"`
}

func (p villaPayload) attributes() domain.VillaAttributes {
	return domain.VillaAttributes{
		Title: p.Title, City: p.City, Address: p.Address,
		BaseCapacity: p.BaseCapacity, MaximumCapacity: p.MaximumCapacity,
		Area: p.Area, BedCount: p.BedCount,
		HasPool: p.HasPool, HasCoolingSystem: p.HasCoolingSystem,
		BasePricePerNight: p.BasePricePerNight, ExtraPersonPrice: p.ExtraPersonPrice,
		Rating: p.Rating,
	}
}

func (h *VillaHandlers) parseVillaForm(r *http.Request) (villaPayload, *app.ImageUpload, error) {
	var payload villaPayload
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return payload, nil, domain.Wrap(domain.KindInvalid, "invalid multipart form", err)
	}
	raw := r.FormValue("villa")
	if raw == "" {
		return payload, nil, domain.E(domain.KindInvalid, "villa part is required")
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, nil, domain.Wrap(domain.KindInvalid, "invalid villa payload", err)
	}
	if err := h.V.Struct(payload); err != nil {
		return payload, nil, domain.Wrap(domain.KindInvalid, "invalid villa payload", err)
	}

	img, err := readImagePart(r)
	if err != nil {
		return payload, nil, err
	}
	return payload, img, nil
}

// readImagePart returns nil when no image part was sent.
func readImagePart(r *http.Request) (*app.ImageUpload, error) {
	file, hdr, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindInvalid, "invalid image part", err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, domain.Wrap(domain.KindInvalid, "invalid image part", err)
	}
	return &app.ImageUpload{
		Name:        hdr.Filename,
		ContentType: partContentType(hdr),
		Data:        data,
	}, nil
}

func partContentType(hdr *multipart.FileHeader) string {
	if ct := hdr.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (h *VillaHandlers) create(w http.ResponseWriter, r *http.Request) {
	payload, img, err := h.parseVillaForm(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if img == nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "image is required")
		return
	}
	v, err := h.S.CreateVilla(r.Context(), bearerToken(r), payload.attributes(), *img)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VillaHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	payload, img, err := h.parseVillaForm(r)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.S.UpdateVilla(r.Context(), bearerToken(r), id, payload.attributes(), img)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VillaHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.S.DeleteVilla(r.Context(), bearerToken(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Villa deleted"})
}

func (h *VillaHandlers) list(w http.ResponseWriter, r *http.Request) {
	var q domain.VillasQuery
	if city := r.URL.Query().Get("city"); city != "" {
		q.City = &city
	}
	if s := r.URL.Query().Get("min_capacity"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid filter", "min_capacity must be a positive integer")
			return
		}
		q.MinCapacity = &n
	}
	if s := r.URL.Query().Get("max_price"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid filter", "max_price must be a positive number")
			return
		}
		q.MaxPrice = &f
	}
	rows, err := h.S.ListVillas(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *VillaHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	v, err := h.S.GetVilla(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
