package classifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClassifySuccess(t *testing.T) {
	var gotPath, gotFilename, gotContentType string
	var gotData []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("Failed to read image form field: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		buf := make([]byte, header.Size)
		file.Read(buf)
		gotData = buf

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"label": "Blue Jay", "probability": 0.97, "classId": 12}`))
	}))
	defer server.Close()

	cls := New(Config{BaseURL: server.URL})

	result, err := cls.Classify(context.Background(), []byte("image bytes"), "image/png", "jay.png")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if result.Label != "Blue Jay" {
		t.Errorf("Expected label 'Blue Jay', got %q", result.Label)
	}
	if result.Probability != 0.97 {
		t.Errorf("Expected probability 0.97, got %v", result.Probability)
	}
	if result.ClassID != 12 {
		t.Errorf("Expected classId 12, got %d", result.ClassID)
	}

	if gotPath != "/classify" {
		t.Errorf("Expected POST to /classify, got %q", gotPath)
	}
	if gotFilename != "jay.png" {
		t.Errorf("Expected filename 'jay.png', got %q", gotFilename)
	}
	if gotContentType != "image/png" {
		t.Errorf("Expected part content type 'image/png', got %q", gotContentType)
	}
	if string(gotData) != "image bytes" {
		t.Errorf("Expected image bytes to round-trip, got %q", gotData)
	}
}

func TestClassifyDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("Failed to read image form field: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if header.Filename != "bird_image" {
			t.Errorf("Expected default filename 'bird_image', got %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("Expected default content type 'image/jpeg', got %q", ct)
		}
		w.Write([]byte(`{"label": "Robin", "probability": 0.5, "classId": 1}`))
	}))
	defer server.Close()

	cls := New(Config{BaseURL: server.URL})
	if _, err := cls.Classify(context.Background(), []byte("x"), "", ""); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
}

func TestClassifyUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cls := New(Config{BaseURL: server.URL})

	_, err := cls.Classify(context.Background(), []byte("x"), "image/jpeg", "a.jpg")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", statusErr.StatusCode)
	}
	if statusErr.Body != "model not loaded" {
		t.Errorf("Expected upstream body in error, got %q", statusErr.Body)
	}
}

func TestClassifyTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cls := New(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	_, err := cls.Classify(context.Background(), []byte("x"), "image/jpeg", "a.jpg")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
}

func TestClassifyBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	cls := New(Config{BaseURL: server.URL})

	if _, err := cls.Classify(context.Background(), []byte("x"), "image/jpeg", "a.jpg"); err == nil {
		t.Fatal("Expected decode error, got nil")
	}
}
