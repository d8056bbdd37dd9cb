package app

import (
	"context"

	"villamarket/internal/domain"
)

// ImageUpload is an in-memory image payload bound for the media gateway.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// VillaService is the villa write path: admin authorization, remote image
// upload, then the local row write. Read paths are public.
type VillaService struct {
	gate  *AdminGate
	media domain.MediaGateway
	repo  domain.VillaRepository
}

func NewVillaService(gate *AdminGate, media domain.MediaGateway, repo domain.VillaRepository) *VillaService {
	return &VillaService{gate: gate, media: media, repo: repo}
}

func (s *VillaService) CreateVilla(ctx context.Context, credential string, attrs domain.VillaAttributes, img ImageUpload) (domain.Villa, error) {
	if _, err := s.gate.Authorize(ctx, credential); err != nil {
		return domain.Villa{}, err
	}

	url, err := s.media.Upload(ctx, img.Name, img.ContentType, img.Data)
	if err != nil {
		return domain.Villa{}, err
	}

	return s.repo.Create(ctx, domain.Villa{VillaAttributes: attrs, ImageURL: url})
}

// UpdateVilla replaces every attribute field by value. Without a new image
// the stored image reference is kept exactly; with one it is fully
// replaced by the freshly uploaded URL.
func (s *VillaService) UpdateVilla(ctx context.Context, credential string, id int64, attrs domain.VillaAttributes, img *ImageUpload) (domain.Villa, error) {
	if _, err := s.gate.Authorize(ctx, credential); err != nil {
		return domain.Villa{}, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Villa{}, err
	}

	imageURL := existing.ImageURL
	if img != nil {
		imageURL, err = s.media.Upload(ctx, img.Name, img.ContentType, img.Data)
		if err != nil {
			return domain.Villa{}, err
		}
	}

	updated := domain.Villa{ID: id, VillaAttributes: attrs, ImageURL: imageURL}
	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Villa{}, err
	}
	return updated, nil
}

func (s *VillaService) DeleteVilla(ctx context.Context, credential string, id int64) error {
	if _, err := s.gate.Authorize(ctx, credential); err != nil {
		return err
	}
	// Existing reservations referencing the villa are left alone: no
	// cascade, no block. Cross-store consistency is out of scope here.
	return s.repo.Delete(ctx, id)
}

func (s *VillaService) GetVilla(ctx context.Context, id int64) (domain.Villa, error) {
	return s.repo.Get(ctx, id)
}

func (s *VillaService) ListVillas(ctx context.Context, q domain.VillasQuery) ([]domain.Villa, error) {
	return s.repo.List(ctx, q)
}
