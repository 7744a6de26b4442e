package ports

import (
	"context"
	"io"

	"yasen/internal/core/domain"
)

// DocumentBackend persists whole JSON documents by name. Load returns nil
// data and no error when the document does not exist yet.
type DocumentBackend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Close()
}

type WarshipsAPI interface {
	FindPlayerID(ctx context.Context, region domain.Region, nickname string) (int64, error)
	PlayerStats(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error)
	Ships(ctx context.Context, region domain.Region) ([]domain.Ship, error)
}

type CurrencyConverter interface {
	Convert(ctx context.Context, from, to string, amount float64) (*domain.Conversion, error)
}

type LatexRenderer interface {
	Render(ctx context.Context, expression string) (io.ReadCloser, error)
}

type ImageSearcher interface {
	Random(ctx context.Context, tags []string) (*domain.Image, error)
}

type AnswerSearcher interface {
	TopAnswer(ctx context.Context, question string) (*domain.Answer, error)
}

type VideoResolver interface {
	Resolve(ctx context.Context, url string) (*domain.Track, error)
}
