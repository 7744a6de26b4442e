package booru

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	"yasen/internal/adapters/httpclient"
	"yasen/internal/core/domain"
)

// Client searches a Gelbooru style board through its dapi endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pick       func(n int) int
}

func NewClient(name, baseURL string) *Client {
	return &Client{
		httpClient: httpclient.New(name, 2),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		pick:       rand.IntN,
	}
}

type post struct {
	Directory string `json:"directory"`
	Image     string `json:"image"`
	FileURL   string `json:"file_url"`
	Tags      string `json:"tags"`
}

// Random returns one random post matching all tags.
func (c *Client) Random(ctx context.Context, tags []string) (*domain.Image, error) {
	params := url.Values{}
	params.Set("page", "dapi")
	params.Set("s", "post")
	params.Set("q", "index")
	params.Set("json", "1")
	params.Set("limit", "100")
	params.Set("tags", strings.Join(tags, " "))

	u := c.baseURL + "/index.php?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httpclient.StatusError{StatusCode: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}

	posts, err := decodePosts(body)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, domain.ErrNotFound
	}

	p := posts[c.pick(len(posts))]
	return &domain.Image{
		URL:    c.imageURL(p),
		Source: c.baseURL,
		Tags:   p.Tags,
	}, nil
}

func (c *Client) imageURL(p post) string {
	if p.FileURL != "" {
		return p.FileURL
	}
	return fmt.Sprintf("%s/images/%s/%s", c.baseURL, p.Directory, p.Image)
}

// decodePosts accepts both the bare array Safebooru returns and the
// {"post": [...]} object newer Gelbooru versions return. An empty body means
// no results.
func decodePosts(body []byte) ([]post, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	if body[0] == '[' {
		var posts []post
		if err := json.Unmarshal(body, &posts); err != nil {
			return nil, fmt.Errorf("decode posts: %w", err)
		}
		return posts, nil
	}

	var wrapped struct {
		Post []post `json:"post"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return wrapped.Post, nil
}
