package commands

import (
	"io"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// Response is one reply produced by a handler.
type Response interface {
	Send(s Session, channelID string) error
}

type TextResponse struct {
	Content string
}

type EmbedResponse struct {
	Embed *discordgo.MessageEmbed
}

type FileResponse struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

func Text(content string) *TextResponse {
	return &TextResponse{Content: content}
}

func Embed(embed *discordgo.MessageEmbed) *EmbedResponse {
	return &EmbedResponse{Embed: embed}
}

func File(name, contentType string, r io.Reader) *FileResponse {
	return &FileResponse{Name: name, ContentType: contentType, Reader: r}
}

func Texts(lines ...string) []Response {
	out := make([]Response, 0, len(lines))
	for _, l := range lines {
		out = append(out, Text(l))
	}
	return out
}

// Send splits content longer than the message limit on line boundaries.
func (t *TextResponse) Send(s Session, channelID string) error {
	for _, chunk := range formatting.SplitMessage(t.Content, formatting.MessageLimit) {
		if err := send(s, channelID, "text", &discordgo.MessageSend{Content: chunk}); err != nil {
			return err
		}
	}
	return nil
}

func (e *EmbedResponse) Send(s Session, channelID string) error {
	return send(s, channelID, "embed", &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{e.Embed}})
}

func (f *FileResponse) Send(s Session, channelID string) error {
	if c, ok := f.Reader.(io.Closer); ok {
		defer c.Close()
	}
	return send(s, channelID, "file", &discordgo.MessageSend{
		Files: []*discordgo.File{{Name: f.Name, ContentType: f.ContentType, Reader: f.Reader}},
	})
}

func send(s Session, channelID, kind string, data *discordgo.MessageSend) error {
	if _, err := s.ChannelMessageSendComplex(channelID, data); err != nil {
		metrics.DiscordMessagesSent.WithLabelValues(kind, "error").Inc()
		return err
	}
	metrics.DiscordMessagesSent.WithLabelValues(kind, "success").Inc()
	return nil
}
