package youtube

import (
	"context"
	"fmt"
	"net/http"

	"yasen/internal/core/domain"

	"github.com/kkdai/youtube/v2"
)

type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
}

// Resolver reads video metadata for the music queue.
type Resolver struct {
	client videoClient
}

func NewResolver(httpClient *http.Client) *Resolver {
	return &Resolver{client: &youtube.Client{HTTPClient: httpClient}}
}

func (r *Resolver) Resolve(ctx context.Context, url string) (*domain.Track, error) {
	if _, err := youtube.ExtractVideoID(url); err != nil {
		return nil, fmt.Errorf("not a youtube link: %w", err)
	}

	video, err := r.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch video: %w", err)
	}

	return &domain.Track{
		ID:       video.ID,
		Title:    video.Title,
		Author:   video.Author,
		Duration: video.Duration.String(),
		URL:      "https://www.youtube.com/watch?v=" + video.ID,
	}, nil
}
