package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"yasen/internal/metrics"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/websocket"
)

const (
	DefaultPresenceBaseDelay = time.Second
	DefaultPresenceMaxDelay  = time.Minute
)

type PresenceSession interface {
	UpdateGameStatus(idle int, name string) error
	Open() error
	Close() error
}

// Presence sets the bot activity and recovers from a dropped gateway
// connection by reconnecting a bounded number of times.
type Presence struct {
	session    PresenceSession
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewPresence(session PresenceSession, maxRetries int) *Presence {
	return &Presence{
		session:    session,
		maxRetries: maxRetries,
		baseDelay:  DefaultPresenceBaseDelay,
		maxDelay:   DefaultPresenceMaxDelay,
		sleep:      sleepContext,
	}
}

// Set updates the activity. With retry disabled, or for errors other than a
// closed connection, the first error is returned unchanged.
func (p *Presence) Set(ctx context.Context, activity string, retry bool) error {
	err := p.session.UpdateGameStatus(0, activity)
	if err == nil || !retry || !IsConnectionClosed(err) {
		return err
	}

	delay := p.baseDelay
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		slog.Warn("Presence update hit a closed connection, reconnecting",
			"attempt", attempt, "max_retries", p.maxRetries, "delay", delay, "error", err)
		metrics.PresenceRetries.Inc()

		if cerr := p.session.Close(); cerr != nil {
			slog.Warn("Failed to close discord session", "error", cerr)
		}

		if serr := p.sleep(ctx, delay); serr != nil {
			return serr
		}
		delay = min(delay*2, p.maxDelay)

		if oerr := p.session.Open(); oerr != nil {
			err = oerr
			continue
		}

		err = p.session.UpdateGameStatus(0, activity)
		if err == nil {
			slog.Info("Presence updated after reconnect", "attempt", attempt)
			return nil
		}
		if !IsConnectionClosed(err) {
			return err
		}
	}

	return fmt.Errorf("set presence after %d retries: %w", p.maxRetries, err)
}

// ReadyHandler sets the presence whenever the gateway becomes ready.
func (p *Presence) ReadyHandler(ctx context.Context, activity string) func(*discordgo.Session, *discordgo.Ready) {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Yasen is online!", "user", r.User.Username, "guilds", len(r.Guilds))
		if err := p.Set(ctx, activity, true); err != nil {
			slog.Error("Failed to set presence", "activity", activity, "error", err)
		}
	}
}

func IsConnectionClosed(err error) bool {
	var closeErr *websocket.CloseError
	return errors.Is(err, discordgo.ErrWSNotFound) ||
		errors.Is(err, websocket.ErrCloseSent) ||
		errors.Is(err, net.ErrClosed) ||
		errors.As(err, &closeErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
