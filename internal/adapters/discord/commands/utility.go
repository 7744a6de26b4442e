package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/adapters/latex"
	"yasen/internal/core/domain"
	"yasen/internal/core/services"

	"github.com/bwmarrin/discordgo"
)

const (
	embedDescriptionLimit = 4096
	invitePermissions     = 3238976
)

func (h *BotHandler) utilityCommands() []*Command {
	return []*Command{
		{
			Name:    "help",
			Group:   GroupUtility,
			Params:  []Param{{Name: "command", Optional: true}},
			Help:    usage("Display help for all commands or a single one.", "`{prefix}help`", "`{prefix}help currency`"),
			Handler: h.Help,
		},
		{
			Name:    "setprefix",
			Group:   GroupUtility,
			Params:  []Param{{Name: "prefix"}},
			Checks:  []Check{GuildOnly, AdminOnly},
			Help:    usage("Set the command prefix for this server. The prefix must be one character.", "`{prefix}setprefix !`"),
			Handler: h.SetPrefix,
		},
		{
			Name:    "ping",
			Group:   GroupUtility,
			Help:    usage("Measure the round trip to Discord.", "`{prefix}ping`"),
			Handler: h.Ping,
		},
		{
			Name:    "info",
			Group:   GroupUtility,
			Help:    usage("Display information about the bot.", "`{prefix}info`"),
			Handler: h.Info,
		},
		{
			Name:    "avatar",
			Group:   GroupUtility,
			Params:  []Param{{Name: "user", Kind: KindUser, Optional: true}},
			Help:    usage("Display the avatar of a user, or your own.", "`{prefix}avatar`", "`{prefix}avatar @user`"),
			Handler: h.Avatar,
		},
		{
			Name:    "joined",
			Group:   GroupUtility,
			Params:  []Param{{Name: "user", Kind: KindUser, Optional: true}},
			Checks:  []Check{GuildOnly},
			Help:    usage("Display when a member joined this server.", "`{prefix}joined`", "`{prefix}joined @user`"),
			Handler: h.Joined,
		},
		{
			Name:  "currency",
			Group: GroupUtility,
			Params: []Param{
				{Name: "from"},
				{Name: "to"},
				{Name: "amount", Optional: true, Default: "1"},
			},
			Help:    usage("Convert between currencies.", "`{prefix}currency USD CAD`", "`{prefix}currency USD CAD 100`"),
			Handler: h.Currency,
		},
		{
			Name:    "latex",
			Group:   GroupUtility,
			Params:  []Param{{Name: "expression", Greedy: true}},
			Help:    usage("Render a LaTeX expression.", "`{prefix}latex \\frac{a}{b}`"),
			Handler: h.Latex,
		},
		{
			Name:    "stackoverflow",
			Aliases: []string{"so"},
			Group:   GroupUtility,
			Params:  []Param{{Name: "question", Greedy: true}},
			Help:    usage("Search Stack Overflow and show the top answer.", "`{prefix}stackoverflow reverse a slice in go`"),
			Handler: h.StackOverflow,
		},
	}
}

func (h *BotHandler) Help(ctx context.Context, req *Request) ([]Response, error) {
	name := req.Args.String("command")
	if name == "" {
		return []Response{Embed(h.deps.Help.General(req.Prefix))}, nil
	}

	embed, ok := h.deps.Help.Command(name, req.Prefix)
	if !ok {
		return []Response{Text(formatting.MsgCommandNotFound(name))}, nil
	}
	return []Response{Embed(embed)}, nil
}

func (h *BotHandler) SetPrefix(ctx context.Context, req *Request) ([]Response, error) {
	prefix := req.Args.String("prefix")

	err := h.deps.Prefixes.Set(ctx, req.GuildID(), prefix)
	switch {
	case errors.Is(err, services.ErrInvalidPrefix):
		return []Response{Text(formatting.MsgInvalidPrefix)}, nil
	case err != nil:
		return nil, err
	}

	slog.Info("Prefix changed", "guild_id", req.GuildID(), "prefix", prefix)
	return []Response{Text(formatting.MsgPrefixSet(prefix))}, nil
}

// Ping sends a message and edits it with the measured round trip.
func (h *BotHandler) Ping(ctx context.Context, req *Request) ([]Response, error) {
	start := h.now()
	msg, err := req.Session.ChannelMessageSendComplex(req.ChannelID(), &discordgo.MessageSend{Content: formatting.MsgPing})
	if err != nil {
		return nil, fmt.Errorf("send ping: %w", err)
	}

	elapsed := h.now().Sub(start)
	if _, err := req.Session.ChannelMessageEdit(msg.ChannelID, msg.ID, formatting.MsgPong(elapsed.Milliseconds())); err != nil {
		return nil, fmt.Errorf("edit ping: %w", err)
	}
	return nil, nil
}

func (h *BotHandler) Info(ctx context.Context, req *Request) ([]Response, error) {
	info := h.deps.Info
	guilds := 0
	if info.GuildCount != nil {
		guilds = info.GuildCount()
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Servers", Value: strconv.Itoa(guilds), Inline: true},
		{Name: "Uptime", Value: h.now().Sub(info.Started).Truncate(time.Second).String(), Inline: true},
		{Name: "Version", Value: info.Version, Inline: true},
	}
	if info.ClientID != nil {
		link := fmt.Sprintf("https://discord.com/oauth2/authorize?client_id=%s&scope=bot&permissions=%d", info.ClientID(), invitePermissions)
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Invite", Value: link})
	}

	return []Response{Embed(&discordgo.MessageEmbed{
		Color:  h.deps.Config.EmbedColour,
		Author: &discordgo.MessageEmbedAuthor{Name: "Yasen"},
		Fields: fields,
	})}, nil
}

func (h *BotHandler) targetUser(req *Request) (*discordgo.User, error) {
	id := req.Args.User("user")
	if id == "" || id == req.AuthorID() {
		return req.Message.Author, nil
	}
	for _, u := range req.Message.Mentions {
		if u.ID == id {
			return u, nil
		}
	}
	user, err := req.Session.User(id)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", id, err)
	}
	return user, nil
}

func (h *BotHandler) Avatar(ctx context.Context, req *Request) ([]Response, error) {
	user, err := h.targetUser(req)
	if isUnknown(err, discordgo.ErrCodeUnknownUser) {
		return []Response{Text(formatting.MsgUserNotFound)}, nil
	}
	if err != nil {
		return nil, err
	}

	return []Response{Embed(&discordgo.MessageEmbed{
		Color:  h.deps.Config.EmbedColour,
		Author: &discordgo.MessageEmbedAuthor{Name: user.Username},
		Image:  &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
	})}, nil
}

func (h *BotHandler) Joined(ctx context.Context, req *Request) ([]Response, error) {
	user, err := h.targetUser(req)
	if isUnknown(err, discordgo.ErrCodeUnknownUser) {
		return []Response{Text(formatting.MsgUserNotFound)}, nil
	}
	if err != nil {
		return nil, err
	}

	member, err := req.Session.GuildMember(req.GuildID(), user.ID)
	if isUnknown(err, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser) {
		return []Response{Text(formatting.MsgMemberNotFound)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch member %s: %w", user.ID, err)
	}

	return []Response{Text(formatting.MsgJoined(displayName(member, user), member.JoinedAt.UTC().Format("2006-01-02 15:04:05 MST")))}, nil
}

// isUnknown reports whether a Discord REST call failed with one of the
// "unknown entity" codes.
func isUnknown(err error, codes ...int) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	return slices.Contains(codes, restErr.Message.Code)
}

func displayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func (h *BotHandler) Currency(ctx context.Context, req *Request) ([]Response, error) {
	from := strings.ToUpper(req.Args.String("from"))
	to := strings.ToUpper(req.Args.String("to"))
	if !currencyCode(from) || !currencyCode(to) {
		return []Response{Text(formatting.MsgCurrencyCodes)}, nil
	}

	amount, err := strconv.ParseFloat(req.Args.String("amount"), 64)
	if err != nil || amount <= 0 {
		return []Response{Text(formatting.MsgCurrencyAmount)}, nil
	}

	conv, err := h.deps.Currency.Convert(ctx, from, to, amount)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return []Response{Text(formatting.MsgCurrencyCodes)}, nil
	case err != nil:
		return upstreamFailed(req, "currency", err), nil
	}

	return []Response{Text(formatting.MsgConversion(conv.Amount, conv.From, conv.Result, conv.To))}, nil
}

func currencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (h *BotHandler) Latex(ctx context.Context, req *Request) ([]Response, error) {
	img, err := h.deps.Latex.Render(ctx, req.Args.String("expression"))
	switch {
	case errors.Is(err, latex.ErrRender):
		return []Response{Text(formatting.MsgLatexFailed)}, nil
	case err != nil:
		return upstreamFailed(req, "latex", err), nil
	}
	return []Response{File("latex.png", "image/png", img)}, nil
}

func (h *BotHandler) StackOverflow(ctx context.Context, req *Request) ([]Response, error) {
	answer, err := h.deps.Answers.TopAnswer(ctx, req.Args.String("question"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return []Response{Text(formatting.MsgNoAnswer)}, nil
	case err != nil:
		return upstreamFailed(req, "stackexchange", err), nil
	}

	footer := fmt.Sprintf("Score: %d", answer.Score)
	if answer.Accepted {
		footer += " | Accepted"
	}

	return []Response{Embed(&discordgo.MessageEmbed{
		Color:       h.deps.Config.EmbedColour,
		Title:       answer.QuestionTitle,
		URL:         answer.QuestionLink,
		Description: truncate(answer.Body, embedDescriptionLimit),
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	})}, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
