// ABOUTME: Tests for multipart tour creation
// ABOUTME: Verifies form fields, the image part, and error conversion
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

func TestCreateTourWithImage(t *testing.T) {
	partnerID := uuid.New()
	created := models.Tour{ID: uuid.New(), Title: "Harbor Cruise", ImageURL: "/images/abc.jpg"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tours" || r.Method != http.MethodPost {
			t.Errorf("got %s %s, want POST /tours", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart form: %v", err)
		}
		if got := r.FormValue("title"); got != "Harbor Cruise" {
			t.Errorf("title = %q", got)
		}
		if got := r.FormValue("partner_id"); got != partnerID.String() {
			t.Errorf("partner_id = %q", got)
		}
		if got := r.FormValue("price"); got != "4500" {
			t.Errorf("price = %q", got)
		}
		if got := r.FormValue("date"); got == "" {
			t.Error("date field missing")
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part missing: %v", err)
		}
		defer func() { _ = file.Close() }()
		if header.Filename != "cruise.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "jpeg-bytes" {
			t.Errorf("image payload = %q", data)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewSession("tok", uuid.New(), nil))
	draft := models.Tour{
		PartnerID: partnerID,
		Title:     "Harbor Cruise",
		Price:     4500,
		Currency:  "EUR",
		Capacity:  12,
		Status:    models.StatusScheduled,
		Date:      time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
	}

	got, err := client.CreateTourWithImage(context.Background(), draft, []byte("jpeg-bytes"), "cruise.jpg")
	if err != nil {
		t.Fatalf("CreateTourWithImage failed: %v", err)
	}
	if got.ID != created.ID || got.ImageURL != created.ImageURL {
		t.Errorf("got %+v, want the server-canonical tour", got)
	}
}

func TestCreateTourWithoutImageOmitsPart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart form: %v", err)
		}
		if _, _, err := r.FormFile("image"); err == nil {
			t.Error("image part should be absent")
		}
		_ = json.NewEncoder(w).Encode(models.Tour{ID: uuid.New()})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, NewSession("tok", uuid.New(), nil))
	_, err := client.CreateTourWithImage(context.Background(), models.Tour{Title: "No Image"}, nil, "")
	if err != nil {
		t.Fatalf("CreateTourWithImage failed: %v", err)
	}
}
