package discord

import (
	"context"
	"log/slog"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/metrics"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Reporter posts command faults to the developer's error log channel.
type Reporter struct {
	session   MessageSender
	channelID string
	newID     func() string
}

func NewReporter(session MessageSender, channelID string) *Reporter {
	return &Reporter{
		session:   session,
		channelID: channelID,
		newID:     uuid.NewString,
	}
}

// Report sends the header and trace and returns the incident id.
func (r *Reporter) Report(ctx context.Context, header, trace string) string {
	id := r.newID()
	slog.Error("Command fault", "incident_id", id, "header", header)

	if r.channelID == "" {
		return id
	}

	messages := append([]string{formatting.MsgIncident(header, id)},
		formatting.CodeBlocks(trace, "go", formatting.MessageLimit)...)

	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}
		if _, err := r.session.ChannelMessageSend(r.channelID, msg); err != nil {
			metrics.DiscordMessagesSent.WithLabelValues("incident", "error").Inc()
			slog.Error("Failed to send incident report", "incident_id", id, "channel_id", r.channelID, "error", err)
			return id
		}
		metrics.DiscordMessagesSent.WithLabelValues("incident", "success").Inc()
	}

	return id
}
