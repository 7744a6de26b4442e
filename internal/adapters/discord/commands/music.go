package commands

import (
	"context"
	"log/slog"
	"strings"

	"yasen/internal/adapters/discord/formatting"
)

func (h *BotHandler) musicCommands() []*Command {
	return []*Command{
		{
			Name:    "play",
			Group:   GroupMusic,
			Params:  []Param{{Name: "url"}},
			Checks:  []Check{GuildOnly},
			Help:    usage("Queue a YouTube video.", "`{prefix}play https://www.youtube.com/watch?v=THrCQ1ftuTU`"),
			Handler: h.Play,
		},
		{
			Name:    "queue",
			Group:   GroupMusic,
			Checks:  []Check{GuildOnly},
			Help:    usage("Show the queue.", "`{prefix}queue`"),
			Handler: h.Queue,
		},
		{
			Name:    "skip",
			Group:   GroupMusic,
			Checks:  []Check{GuildOnly},
			Help:    usage("Skip the current track.", "`{prefix}skip`"),
			Handler: h.Skip,
		},
		{
			Name:    "clear",
			Group:   GroupMusic,
			Checks:  []Check{GuildOnly, ManageMessages},
			Help:    usage("Clear the queue.", "`{prefix}clear`"),
			Handler: h.Clear,
		},
	}
}

func (h *BotHandler) Play(ctx context.Context, req *Request) ([]Response, error) {
	url := strings.Trim(req.Args.String("url"), "<>")

	track, pos, err := h.deps.Music.Enqueue(ctx, req.GuildID(), url, req.AuthorID())
	if err != nil {
		slog.Warn("Failed to queue video", "guild_id", req.GuildID(), "url", url, "error", err)
		return []Response{Text(formatting.MsgVideoFailed)}, nil
	}
	return []Response{Text(formatting.MsgQueued(track.Title, track.Duration, pos))}, nil
}

func (h *BotHandler) Queue(ctx context.Context, req *Request) ([]Response, error) {
	tracks := h.deps.Music.List(req.GuildID())
	if len(tracks) == 0 {
		return []Response{Text(formatting.MsgQueueEmpty)}, nil
	}

	lines := make([]string, len(tracks))
	for i, t := range tracks {
		lines[i] = formatting.MsgQueueEntry(i+1, t.Title, t.Duration, t.RequestedBy)
	}
	return []Response{Text(strings.Join(lines, "\n"))}, nil
}

func (h *BotHandler) Skip(ctx context.Context, req *Request) ([]Response, error) {
	track, ok := h.deps.Music.Skip(req.GuildID())
	if !ok {
		return []Response{Text(formatting.MsgNothingToSkip)}, nil
	}
	return []Response{Text(formatting.MsgSkipped(track.Title))}, nil
}

func (h *BotHandler) Clear(ctx context.Context, req *Request) ([]Response, error) {
	return []Response{Text(formatting.MsgCleared(h.deps.Music.Clear(req.GuildID())))}, nil
}
