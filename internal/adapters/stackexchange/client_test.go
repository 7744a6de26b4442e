package stackexchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"yasen/internal/core/domain"
)

func TestClient_TopAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("site") != "stackoverflow" {
			t.Errorf("missing site parameter in %s", r.URL)
		}
		switch r.URL.Path {
		case "/search/advanced":
			if r.URL.Query().Get("q") != "reverse a slice in go" {
				t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
			}
			w.Write([]byte(`{"items":[{"question_id":42,"title":"How to reverse a slice &quot;in place&quot;?","link":"https://stackoverflow.com/q/42","accepted_answer_id":8}]}`))
		case "/questions/42/answers":
			if r.URL.Query().Get("filter") != "withbody" {
				t.Errorf("answers must be requested with bodies")
			}
			w.Write([]byte(`{"items":[
				{"answer_id":7,"body":"<p>Top voted</p>","score":50,"is_accepted":false},
				{"answer_id":8,"body":"<p>Use <code>slices.Reverse</code></p>","score":20,"is_accepted":true}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	answer, err := NewTestClient(server.URL).TopAnswer(context.Background(), "reverse a slice in go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer.QuestionTitle != `How to reverse a slice "in place"?` {
		t.Errorf("title should be unescaped, got %q", answer.QuestionTitle)
	}
	if !answer.Accepted || answer.Body != "Use `slices.Reverse`" {
		t.Errorf("expected the accepted answer, got %+v", answer)
	}
}

func TestClient_TopAnswerFallsBackToVotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/advanced":
			w.Write([]byte(`{"items":[{"question_id":1,"title":"t","link":"l"}]}`))
		default:
			w.Write([]byte(`{"items":[{"answer_id":5,"body":"<p>best</p>","score":10}]}`))
		}
	}))
	defer server.Close()

	answer, err := NewTestClient(server.URL).TopAnswer(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Body != "best" || answer.Accepted {
		t.Errorf("expected highest voted answer, got %+v", answer)
	}
}

func TestClient_TopAnswerNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	_, err := NewTestClient(server.URL).TopAnswer(context.Background(), "nothing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
