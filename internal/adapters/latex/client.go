package latex

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"yasen/internal/adapters/httpclient"
)

var ErrRender = errors.New("latex render failed")

// Client renders expressions through the QuickLaTeX service.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(endpoint string) *Client {
	return &Client{
		httpClient: httpclient.New("latex", 2),
		endpoint:   endpoint,
	}
}

// Render returns the PNG image of the expression. The caller closes it.
func (c *Client) Render(ctx context.Context, expression string) (io.ReadCloser, error) {
	imageURL, err := c.compile(ctx, expression)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &httpclient.StatusError{StatusCode: resp.StatusCode, URL: imageURL}
	}
	return resp.Body, nil
}

func (c *Client) compile(ctx context.Context, expression string) (string, error) {
	form := url.Values{}
	form.Set("formula", expression)
	form.Set("fsize", "30px")
	form.Set("fcolor", "FFFFFF")
	form.Set("mode", "0")
	form.Set("out", "1")
	form.Set("remhost", "quicklatex.com")
	form.Set("preamble", `\usepackage{amsmath}\usepackage{amsfonts}\usepackage{amssymb}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build compile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("compile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &httpclient.StatusError{StatusCode: resp.StatusCode, URL: c.endpoint}
	}

	return parseCompileResponse(resp.Body)
}

// parseCompileResponse reads the "<status>\r\n<url> <width> <height> ..."
// reply. A non-zero status carries the compiler error on the following lines.
func parseCompileResponse(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return "", fmt.Errorf("%w: empty response", ErrRender)
	}
	status := strings.TrimSpace(scanner.Text())

	var rest []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			rest = append(rest, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if status != "0" {
		return "", fmt.Errorf("%w: %s", ErrRender, strings.Join(rest, " "))
	}
	if len(rest) == 0 {
		return "", fmt.Errorf("%w: missing image url", ErrRender)
	}

	fields := strings.Fields(rest[0])
	return fields[0], nil
}
