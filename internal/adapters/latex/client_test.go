package latex

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseCompileResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"success", "0\r\nhttps://quicklatex.com/cache3/ab/ql_ab.png 0 54 20\r\n", "https://quicklatex.com/cache3/ab/ql_ab.png", false},
		{"compile error", "-1\r\nhttps://quicklatex.com/error.png 0 0 0\r\nUndefined control sequence\r\n", "", true},
		{"empty", "", "", true},
		{"missing url", "0\r\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCompileResponse(strings.NewReader(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrRender) {
				t.Errorf("expected ErrRender, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClient_Render(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/latex3.f":
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
				return
			}
			if r.PostForm.Get("formula") != `\frac{x}{3}` {
				t.Errorf("unexpected formula %q", r.PostForm.Get("formula"))
			}
			w.Write([]byte("0\r\n" + server.URL + "/cache/ql.png 0 10 10\r\n"))
		case "/cache/ql.png":
			w.Write([]byte("PNGDATA"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	body, err := NewClient(server.URL+"/latex3.f").Render(context.Background(), `\frac{x}{3}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if string(data) != "PNGDATA" {
		t.Errorf("expected image bytes, got %q", data)
	}
}

func TestClient_RenderCompileFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("-1\r\nerror.png 0 0 0\r\nMissing $ inserted\r\n"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Render(context.Background(), `\bad`)
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}
