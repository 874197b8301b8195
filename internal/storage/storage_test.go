package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateImage(t *testing.T) {
	const max = 5 << 20

	if err := ValidateImage("image/png", 100, max); err != nil {
		t.Fatalf("png: %v", err)
	}
	if err := ValidateImage("image/jpeg", max, max); err != nil {
		t.Fatalf("jpeg at ceiling: %v", err)
	}
	if err := ValidateImage("image/webp", 1, max); err != nil {
		t.Fatalf("webp: %v", err)
	}

	if err := ValidateImage("image/gif", 100, max); !errors.Is(err, ErrUnsupportedImageType) {
		t.Fatalf("gif: got %v, want ErrUnsupportedImageType", err)
	}
	if err := ValidateImage("application/pdf", 100, max); !errors.Is(err, ErrUnsupportedImageType) {
		t.Fatalf("pdf: got %v, want ErrUnsupportedImageType", err)
	}
	if err := ValidateImage("image/png", max+1, max); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("oversized: got %v, want ErrImageTooLarge", err)
	}
}

func TestNewKeyUsesContentTypeExtension(t *testing.T) {
	key := NewKey("image/png")
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("key %q missing .png suffix", key)
	}
	if key == NewKey("image/png") {
		t.Fatal("keys must not repeat")
	}
}

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key", "post-images")
	url, err := c.Upload(context.Background(), "abc.png", "image/png", []byte("fake-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if gotPath != "/storage/v1/object/post-images/abc.png" {
		t.Fatalf("path %q", gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Fatalf("auth %q", gotAuth)
	}
	if gotType != "image/png" {
		t.Fatalf("content type %q", gotType)
	}
	want := srv.URL + "/storage/v1/object/public/post-images/abc.png"
	if url != want {
		t.Fatalf("url %q, want %q", url, want)
	}
}

func TestUploadBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket missing"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "b")
	if _, err := c.Upload(context.Background(), "x.png", "image/png", []byte("d")); err == nil {
		t.Fatal("expected error on backend failure")
	}
}

func TestUploadCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "k", "b")
	if _, err := c.Upload(ctx, "x.png", "image/png", []byte("d")); err == nil {
		t.Fatal("expected error on canceled context")
	}
}
