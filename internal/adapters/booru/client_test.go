package booru

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"yasen/internal/core/domain"
)

func newTestClient(baseURL string) *Client {
	c := NewClient("test", baseURL)
	c.pick = func(n int) int { return n - 1 }
	return c
}

func TestClient_RandomSafebooru(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/index.php" || q.Get("page") != "dapi" || q.Get("json") != "1" {
			t.Errorf("unexpected request %s", r.URL)
		}
		if q.Get("tags") != "kanna_kamui rating:safe" {
			t.Errorf("unexpected tags %q", q.Get("tags"))
		}
		w.Write([]byte(`[{"directory":"1","image":"a.png","tags":"kanna_kamui"},{"directory":"2","image":"b.jpg","tags":"kanna_kamui solo"}]`))
	}))
	defer server.Close()

	img, err := newTestClient(server.URL).Random(context.Background(), []string{"kanna_kamui", "rating:safe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.URL != server.URL+"/images/2/b.jpg" {
		t.Errorf("unexpected image url %s", img.URL)
	}
	if img.Tags != "kanna_kamui solo" {
		t.Errorf("unexpected tags %s", img.Tags)
	}
}

func TestClient_RandomGelbooru(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"@attributes":{"count":1},"post":[{"file_url":"https://img.example/x.png","tags":"x"}]}`))
	}))
	defer server.Close()

	img, err := newTestClient(server.URL).Random(context.Background(), []string{"x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.URL != "https://img.example/x.png" {
		t.Errorf("expected file_url to win, got %s", img.URL)
	}
}

func TestClient_RandomNoResults(t *testing.T) {
	bodies := []string{"", "[]", `{"@attributes":{"count":0}}`}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Random(context.Background(), []string{"nothing"})
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestClient_RandomBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<posts></posts>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Random(context.Background(), []string{"x"})
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected decode error, got %v", err)
	}
}
