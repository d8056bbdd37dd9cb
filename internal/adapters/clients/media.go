package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"golang.org/x/time/rate"

	"villamarket/internal/adapters/observability"
	"villamarket/internal/domain"
)

// MediaClient pushes image bytes to the media service and returns the
// stored object's URL. Used by the villa write path before every create
// and image-carrying update.
type MediaClient struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func NewMediaClient(base string, rps int) *MediaClient {
	if rps <= 0 {
		rps = 20
	}
	return &MediaClient{
		base: base,
		hc:   &http.Client{Timeout: 30 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *MediaClient) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", domain.Wrap(domain.KindUpstream, "Failed to upload image", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", domain.Wrap(domain.KindInternal, "build upload body", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", domain.Wrap(domain.KindInternal, "build upload body", err)
	}
	if err := mw.Close(); err != nil {
		return "", domain.Wrap(domain.KindInternal, "build upload body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/media/upload", &body)
	if err != nil {
		return "", domain.Wrap(domain.KindInternal, "build upload request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("media", "upload", 0, time.Since(start))
		return "", domain.Wrap(domain.KindUpstream, "Failed to upload image", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("media", "upload", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", domain.E(domain.KindUpstream, "Failed to upload image")
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.Wrap(domain.KindUpstream, "Failed to upload image", err)
	}
	return out.URL, nil
}
