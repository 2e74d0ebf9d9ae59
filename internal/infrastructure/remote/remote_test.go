package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-api/internal/core/ports"
)

func TestDirectoryClient_FindExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("email"); got != "ada@example.com" {
			t.Errorf("unexpected email query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"name":"ada","email":"ada@example.com"}]`))
	}))
	defer srv.Close()

	c := NewDirectoryClient(srv.URL, zerolog.Nop())
	id, err := c.FindOrCreate(context.Background(), "ada@example.com", "ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "7" {
		t.Fatalf("expected id 7, got %q", id)
	}
}

func TestDirectoryClient_CreatesWhenAbsent(t *testing.T) {
	var created bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[]`))
		case http.MethodPost:
			created = true
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("invalid create body: %v", err)
			}
			if body["email"] != "ada@example.com" {
				t.Errorf("unexpected create email %q", body["email"])
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"abc123","name":"ada","email":"ada@example.com"}`))
		}
	}))
	defer srv.Close()

	c := NewDirectoryClient(srv.URL, zerolog.Nop())
	id, err := c.FindOrCreate(context.Background(), "ada@example.com", "ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected a create request")
	}
	if id != "abc123" {
		t.Fatalf("expected id abc123, got %q", id)
	}
}

func TestDirectoryClient_LookupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewDirectoryClient(srv.URL, zerolog.Nop())
	if _, err := c.FindOrCreate(context.Background(), "ada@example.com", "ada"); err == nil {
		t.Fatal("expected error on directory failure")
	}
}

func TestFeedbackForwarder_Forward(t *testing.T) {
	var got ports.FeedbackSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	f := NewFeedbackForwarder(srv.URL)
	err := f.Forward(context.Background(), ports.FeedbackSubmission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Great app",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Message != "Great app" {
		t.Fatalf("expected message relayed, got %+v", got)
	}
	if got.SubmittedAt.IsZero() {
		t.Fatal("expected SubmittedAt defaulted before relay")
	}
}

func TestFeedbackForwarder_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFeedbackForwarder(srv.URL)
	if err := f.Forward(context.Background(), ports.FeedbackSubmission{Name: "Ada"}); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}
