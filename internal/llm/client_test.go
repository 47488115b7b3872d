package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fakeBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestGenerate_Success(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Stream {
			t.Error("stream must be false")
		}
		if req.Model != "llama" {
			t.Errorf("expected model llama, got %q", req.Model)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "generated text"})
	})

	got, err := c.Generate(context.Background(), "llama", "a prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "generated text" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})
	_, err := c.Generate(context.Background(), "llama", "p")
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BackendError, got %v", err)
	}
}

func TestGenerate_MissingResponseField(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"unexpected": "shape"})
	})
	_, err := c.Generate(context.Background(), "llama", "p")
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BackendError for missing response field, got %v", err)
	}
}

func TestGenerate_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	var be *BackendError
	if _, err := c.Generate(context.Background(), "llama", "p"); !errors.As(err, &be) {
		t.Fatalf("expected *BackendError, got %v", err)
	}
}

func TestListModels_FromBackend(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]string{{"name": "llama3:8b"}, {"name": "gemma:2b"}},
		})
	})
	got := c.ListModels(context.Background())
	if len(got) != 2 || got[0] != "llama3:8b" || got[1] != "gemma:2b" {
		t.Errorf("unexpected model list: %v", got)
	}
}

func TestListModels_FallsBackToBuiltins(t *testing.T) {
	cases := map[string]*Client{
		"unreachable": NewClient("http://127.0.0.1:1"),
		"error status": fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}),
		"empty list": fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
		}),
	}
	for name, c := range cases {
		got := c.ListModels(context.Background())
		if len(got) != len(DefaultModels) || got[0] != DefaultModels[0] {
			t.Errorf("%s: expected built-in models, got %v", name, got)
		}
	}
}
