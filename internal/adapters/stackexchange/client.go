package stackexchange

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"yasen/internal/adapters/httpclient"
	"yasen/internal/core/domain"
)

const DefaultBaseURL = "https://api.stackexchange.com/2.3"

type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	site       string
}

func NewClient(key string) *Client {
	return &Client{
		httpClient: httpclient.New("stackexchange", 5),
		baseURL:    DefaultBaseURL,
		key:        key,
		site:       "stackoverflow",
	}
}

// NewTestClient creates a client with custom base URL for testing.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		site:       "stackoverflow",
	}
}

type questionsResponse struct {
	Items []struct {
		QuestionID       int64  `json:"question_id"`
		Title            string `json:"title"`
		Link             string `json:"link"`
		AcceptedAnswerID int64  `json:"accepted_answer_id"`
	} `json:"items"`
}

type answersResponse struct {
	Items []struct {
		AnswerID   int64  `json:"answer_id"`
		Body       string `json:"body"`
		Score      int    `json:"score"`
		IsAccepted bool   `json:"is_accepted"`
	} `json:"items"`
}

// TopAnswer searches for the most relevant answered question and returns its
// accepted answer, or its highest voted one.
func (c *Client) TopAnswer(ctx context.Context, question string) (*domain.Answer, error) {
	params := c.params()
	params.Set("order", "desc")
	params.Set("sort", "relevance")
	params.Set("q", question)
	params.Set("answers", "1")
	params.Set("pagesize", "5")

	var questions questionsResponse
	if err := httpclient.GetJSON(ctx, c.httpClient, c.baseURL+"/search/advanced?"+params.Encode(), &questions); err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	if len(questions.Items) == 0 {
		return nil, domain.ErrNotFound
	}
	q := questions.Items[0]

	params = c.params()
	params.Set("order", "desc")
	params.Set("sort", "votes")
	params.Set("filter", "withbody")

	var answers answersResponse
	u := fmt.Sprintf("%s/questions/%d/answers?%s", c.baseURL, q.QuestionID, params.Encode())
	if err := httpclient.GetJSON(ctx, c.httpClient, u, &answers); err != nil {
		return nil, fmt.Errorf("fetch answers: %w", err)
	}
	if len(answers.Items) == 0 {
		return nil, domain.ErrNotFound
	}

	best := answers.Items[0]
	for _, a := range answers.Items {
		if a.IsAccepted || a.AnswerID == q.AcceptedAnswerID {
			best = a
			break
		}
	}

	return &domain.Answer{
		QuestionTitle: html.UnescapeString(q.Title),
		QuestionLink:  q.Link,
		Body:          FlattenHTML(best.Body),
		Score:         best.Score,
		Accepted:      best.IsAccepted,
	}, nil
}

func (c *Client) params() url.Values {
	params := url.Values{}
	params.Set("site", c.site)
	if c.key != "" {
		params.Set("key", c.key)
	}
	return params
}
