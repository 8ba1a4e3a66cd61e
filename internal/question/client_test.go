package question

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"question":"https://example.com/q1.png","solution":4}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	q, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.ImageURL != "https://example.com/q1.png" || q.Solution != 4 {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json at all`))
			},
		},
		{
			name: "missing image url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"solution":3}`))
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			c := NewClient(srv.URL, time.Second)
			if _, err := c.Fetch(context.Background()); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestClient_FetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}
