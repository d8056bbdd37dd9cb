package clients_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"villamarket/internal/adapters/clients"
	"villamarket/internal/domain"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestVillaDirectory_GetVilla_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/villas/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "title": "Sea Breeze", "base_capacity": 4, "maximum_capacity": 6,
			"base_price_per_night": 100.0, "extra_person_price": 20.0,
		})
	}))
	defer ts.Close()

	cl := clients.NewVillaDirectoryClient(ts.URL, 100)
	v, err := cl.GetVilla(testCtx(t), 42)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.ID != 42 || v.MaximumCapacity != 6 || v.BasePricePerNight != 100 {
		t.Fatalf("unexpected villa: %+v", v)
	}
}

func TestVillaDirectory_GetVilla_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl := clients.NewVillaDirectoryClient(ts.URL, 100)
	_, err := cl.GetVilla(testCtx(t), 999)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want NotFound", domain.KindOf(err))
	}
	if domain.MessageOf(err) != "Villa not found" {
		t.Fatalf("message = %q", domain.MessageOf(err))
	}
}

func TestVillaDirectory_GetVilla_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	cl := clients.NewVillaDirectoryClient(ts.URL, 100)
	_, err := cl.GetVilla(testCtx(t), 1)
	if domain.KindOf(err) != domain.KindUpstream {
		t.Fatalf("kind = %v, want Upstream", domain.KindOf(err))
	}
}

func TestVillaDirectory_GetVilla_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // connection refused from here on

	cl := clients.NewVillaDirectoryClient(ts.URL, 100)
	_, err := cl.GetVilla(testCtx(t), 1)
	if domain.KindOf(err) != domain.KindUpstream {
		t.Fatalf("kind = %v, want Upstream", domain.KindOf(err))
	}
}

func TestIdentity_Verify_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("auth header = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "role": "admin"})
	}))
	defer ts.Close()

	cl := clients.NewIdentityClient(ts.URL, 100)
	id, err := cl.Verify(testCtx(t), "tok-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id.UserID != 9 || !id.IsAdmin() {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestIdentity_Verify_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl := clients.NewIdentityClient(ts.URL, 100)
	_, err := cl.Verify(testCtx(t), "bad")
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Fatalf("kind = %v, want Unauthorized", domain.KindOf(err))
	}
}

func TestIdentity_Verify_EmptyCredential(t *testing.T) {
	cl := clients.NewIdentityClient("http://unused", 100)
	_, err := cl.Verify(testCtx(t), "")
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Fatalf("kind = %v, want Unauthorized", domain.KindOf(err))
	}
}

func TestMedia_Upload_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if hdr.Filename != "villa.jpg" || string(b) != "jpegbytes" {
			t.Errorf("unexpected upload: %s %q", hdr.Filename, b)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "http://store/villa-images/abc_villa.jpg"})
	}))
	defer ts.Close()

	cl := clients.NewMediaClient(ts.URL, 100)
	url, err := cl.Upload(testCtx(t), "villa.jpg", "image/jpeg", []byte("jpegbytes"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if url != "http://store/villa-images/abc_villa.jpg" {
		t.Fatalf("url = %q", url)
	}
}

func TestMedia_Upload_Failure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cl := clients.NewMediaClient(ts.URL, 100)
	_, err := cl.Upload(testCtx(t), "villa.jpg", "image/jpeg", []byte("x"))
	if domain.KindOf(err) != domain.KindUpstream {
		t.Fatalf("kind = %v, want Upstream", domain.KindOf(err))
	}
	if domain.MessageOf(err) != "Failed to upload image" {
		t.Fatalf("message = %q", domain.MessageOf(err))
	}
}
