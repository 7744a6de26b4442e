package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Session is the part of *discordgo.Session the router and handlers use.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

type PrefixResolver interface {
	Resolve(guildID string) string
}

type IncidentReporter interface {
	Report(ctx context.Context, header, trace string) string
}

type HandlerFunc func(ctx context.Context, req *Request) ([]Response, error)

// Request carries one parsed invocation through checks and the handler.
type Request struct {
	Session Session
	Message *discordgo.Message
	Prefix  string
	Command *Command
	RawArgs string
	Args    Args
}

func (r *Request) GuildID() string {
	return r.Message.GuildID
}

func (r *Request) ChannelID() string {
	return r.Message.ChannelID
}

func (r *Request) AuthorID() string {
	if r.Message.Author == nil {
		return ""
	}
	return r.Message.Author.ID
}

func (r *Request) InGuild() bool {
	return r.Message.GuildID != ""
}
