package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/core/domain"
	"yasen/internal/core/services"

	"github.com/bwmarrin/discordgo"
)

func (h *BotHandler) wowsCommands() []*Command {
	isOwner := func(id string) bool { return h.deps.Config.IsOwner(id) }
	region := Param{Name: "region", Optional: true, Default: string(domain.RegionNA)}

	return []*Command{
		{
			Name:    "ship",
			Group:   GroupWorldOfWarships,
			Params:  []Param{{Name: "name", Greedy: true}},
			Help:    usage("Look up a ship in the encyclopedia.", "`{prefix}ship Yamato`"),
			Handler: h.Ship,
		},
		{
			Name:    "shame",
			Group:   GroupWorldOfWarships,
			Params:  []Param{{Name: "player"}, region},
			Help:    usage("Show a player's statistics. Mention a member to use their registered player.", "`{prefix}shame @user`", "`{prefix}shame nickname EU`"),
			Handler: h.Shame,
		},
		{
			Name:    "shamelist",
			Group:   GroupWorldOfWarships,
			Checks:  []Check{GuildOnly},
			Help:    usage("List the members registered in this server's shame list.", "`{prefix}shamelist`"),
			Handler: h.ShameList,
		},
		{
			Name:    "addshame",
			Group:   GroupWorldOfWarships,
			Params:  []Param{{Name: "nickname"}, region},
			Checks:  []Check{GuildOnly},
			Help:    usage("Register your in-game player in this server's shame list.", "`{prefix}addshame nickname`", "`{prefix}addshame nickname EU`"),
			Handler: h.AddShame,
		},
		{
			Name:    "removeshame",
			Group:   GroupWorldOfWarships,
			Checks:  []Check{GuildOnly},
			Help:    usage("Remove yourself from this server's shame list.", "`{prefix}removeshame`"),
			Handler: h.RemoveShame,
		},
		{
			Name:    "newsheet",
			Group:   GroupWorldOfWarships,
			Checks:  []Check{GuildOnly, AdminOnly},
			Help:    usage("Create a new match sheet, replacing the old one.", "`{prefix}newsheet`"),
			Handler: h.NewSheet,
		},
		{
			Name:  "addmatch",
			Group: GroupWorldOfWarships,
			Params: []Param{
				{Name: "name"},
				{Name: "weekday"},
				{Name: "time", Optional: true, Greedy: true},
			},
			Checks:  []Check{GuildOnly, AdminOnly},
			Help:    usage("Add a match to the sheet. The weekday must be spelled out in English.", "`{prefix}addmatch clan_battle Monday 20:00 EST`"),
			Handler: h.AddMatch,
		},
		{
			Name:    "removematch",
			Group:   GroupWorldOfWarships,
			Params:  []Param{{Name: "name"}},
			Checks:  []Check{GuildOnly, AdminOnly},
			Help:    usage("Remove a match from the sheet.", "`{prefix}removematch clan_battle`"),
			Handler: h.RemoveMatch,
		},
		{
			Name:    "joinmatch",
			Group:   GroupWorldOfWarships,
			Params:  []Param{{Name: "names", Greedy: true}},
			Checks:  []Check{GuildOnly},
			Help:    usage("Join one or more matches.", "`{prefix}joinmatch clan_battle training`"),
			Handler: h.JoinMatch,
		},
		{
			Name:    "quitmatch",
			Group:   GroupWorldOfWarships,
			Params:  []Param{{Name: "names", Greedy: true}},
			Checks:  []Check{GuildOnly},
			Help:    usage("Quit one or more matches.", "`{prefix}quitmatch clan_battle`"),
			Handler: h.QuitMatch,
		},
		{
			Name:    "sheet",
			Group:   GroupWorldOfWarships,
			Checks:  []Check{GuildOnly},
			Help:    usage("Show the match sheet.", "`{prefix}sheet`"),
			Handler: h.Sheet,
		},
		{
			Name:    "updatewows",
			Group:   GroupWorldOfWarships,
			Checks:  []Check{OwnerOnly(isOwner)},
			Help:    usage("Refresh the ship encyclopedia.", "`{prefix}updatewows`"),
			Handler: h.UpdateWows,
		},
	}
}

func (h *BotHandler) Ship(ctx context.Context, req *Request) ([]Response, error) {
	ship, ok := h.deps.Ships.Find(req.Args.String("name"))
	if !ok {
		return []Response{Text(formatting.MsgShipNotFound)}, nil
	}

	return []Response{Text(formatting.MsgShip(ship.Name, ship.Tier, ship.Price(), ship.Health,
		ship.Citadel.String(), ship.Casemate.String(), ship.Deck.String(), ship.Extremities.String()))}, nil
}

func (h *BotHandler) parseRegion(req *Request) (domain.Region, []Response) {
	region, err := domain.ParseRegion(req.Args.String("region"))
	if err != nil {
		names := make([]string, len(domain.Regions))
		for i, r := range domain.Regions {
			names[i] = string(r)
		}
		return "", []Response{Text(formatting.MsgInvalidRegion(names))}
	}
	return region, nil
}

// Shame shows statistics for a registered member when the player argument is
// a mention, and searches by nickname otherwise.
func (h *BotHandler) Shame(ctx context.Context, req *Request) ([]Response, error) {
	region, invalid := h.parseRegion(req)
	if invalid != nil {
		return invalid, nil
	}

	player := req.Args.String("player")
	var userID, nickname string
	if strings.HasPrefix(player, "<@") {
		id, err := ParseUserID(player)
		if err != nil || !req.InGuild() {
			return []Response{Text(formatting.MsgPlayerNotFound)}, nil
		}
		userID = id
	} else {
		nickname = player
	}

	stats, err := h.deps.Shame.Stats(ctx, req.GuildID(), userID, nickname, region)
	switch {
	case errors.Is(err, services.ErrPlayerNotFound):
		return []Response{Text(formatting.MsgPlayerNotFound)}, nil
	case errors.Is(err, domain.ErrUpstream):
		return upstreamFailed(req, "wows", err), nil
	case err != nil:
		return nil, err
	}

	return []Response{Embed(h.statsEmbed(stats))}, nil
}

func (h *BotHandler) statsEmbed(stats *domain.PlayerStats) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color: h.deps.Config.EmbedColour,
		Title: stats.Nickname,
		URL:   fmt.Sprintf("https://warships.today/player/%d/%s", stats.PlayerID, stats.Region.StatsSite()),
	}
	if stats.Private {
		embed.Description = formatting.MsgPrivateProfile
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Battles", Value: fmt.Sprintf("%d", stats.Battles), Inline: true},
		{Name: "Win Rate", Value: fmt.Sprintf("%.2f%%", stats.WinRate()), Inline: true},
		{Name: "Average Damage", Value: fmt.Sprintf("%.0f", stats.AverageDamage()), Inline: true},
		{Name: "Average Frags", Value: fmt.Sprintf("%.2f", stats.AverageFrags()), Inline: true},
		{Name: "Max Damage", Value: fmt.Sprintf("%d", stats.MaxDamage), Inline: true},
		{Name: "Max Frags", Value: fmt.Sprintf("%d", stats.MaxFrags), Inline: true},
	}
	return embed
}

func (h *BotHandler) ShameList(ctx context.Context, req *Request) ([]Response, error) {
	members := h.deps.Shame.Members(req.GuildID())
	if len(members) == 0 {
		return []Response{Text(formatting.MsgShameListEmpty)}, nil
	}

	names := make([]string, len(members))
	for i, id := range members {
		names[i] = memberName(req, id)
	}
	return codeBlock(strings.Join(names, ", ")), nil
}

func (h *BotHandler) AddShame(ctx context.Context, req *Request) ([]Response, error) {
	region, invalid := h.parseRegion(req)
	if invalid != nil {
		return invalid, nil
	}

	created, err := h.deps.Shame.Register(ctx, req.GuildID(), req.AuthorID(), req.Args.String("nickname"), region)
	switch {
	case errors.Is(err, services.ErrPlayerNotFound):
		return []Response{Text(formatting.MsgPlayerNotFound)}, nil
	case errors.Is(err, domain.ErrUpstream):
		return upstreamFailed(req, "wows", err), nil
	case err != nil:
		return nil, err
	}

	if created {
		return []Response{Text(formatting.MsgShameAdded)}, nil
	}
	return []Response{Text(formatting.MsgShameEdited)}, nil
}

func (h *BotHandler) RemoveShame(ctx context.Context, req *Request) ([]Response, error) {
	err := h.deps.Shame.Remove(ctx, req.GuildID(), req.AuthorID())
	switch {
	case errors.Is(err, services.ErrNotListed):
		return []Response{Text(formatting.MsgShameNotListed)}, nil
	case err != nil:
		return nil, err
	}
	return []Response{Text(formatting.MsgShameRemoved)}, nil
}

func (h *BotHandler) NewSheet(ctx context.Context, req *Request) ([]Response, error) {
	if err := h.deps.Sheet.New(ctx, req.GuildID()); err != nil {
		return nil, err
	}
	return []Response{Text(formatting.MsgSheetCreated)}, nil
}

func (h *BotHandler) AddMatch(ctx context.Context, req *Request) ([]Response, error) {
	when := append([]string{req.Args.String("weekday")}, req.Args.Fields("time")...)

	match, err := h.deps.Sheet.AddMatch(ctx, req.GuildID(), req.Args.String("name"), when)
	if resp, handled := sheetError(req, err); handled {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return []Response{Text(formatting.MsgMatchAdded(match.When()))}, nil
}

func (h *BotHandler) RemoveMatch(ctx context.Context, req *Request) ([]Response, error) {
	name := req.Args.String("name")
	err := h.deps.Sheet.RemoveMatch(ctx, req.GuildID(), name)
	if resp, handled := sheetError(req, err); handled {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return []Response{Text(formatting.MsgMatchRemoved(name))}, nil
}

func (h *BotHandler) JoinMatch(ctx context.Context, req *Request) ([]Response, error) {
	joined, err := h.deps.Sheet.Join(ctx, req.GuildID(), req.AuthorID(), req.Args.Fields("names"))
	if resp, handled := sheetError(req, err); handled {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return []Response{Text(formatting.MsgMatchesJoined(joined))}, nil
}

func (h *BotHandler) QuitMatch(ctx context.Context, req *Request) ([]Response, error) {
	quit, err := h.deps.Sheet.Quit(ctx, req.GuildID(), req.AuthorID(), req.Args.Fields("names"))
	if resp, handled := sheetError(req, err); handled {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return []Response{Text(formatting.MsgMatchesQuit(quit))}, nil
}

func (h *BotHandler) Sheet(ctx context.Context, req *Request) ([]Response, error) {
	matches, err := h.deps.Sheet.Matches(req.GuildID())
	if resp, handled := sheetError(req, err); handled {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []Response{Text(formatting.MsgSheetEmpty)}, nil
	}

	entries := make([]string, len(matches))
	for i, m := range matches {
		players := make([]string, len(m.Players))
		for j, id := range m.Players {
			players[j] = memberName(req, id)
		}
		entries[i] = formatting.MsgMatchEntry(m.When(), m.Name, players)
	}
	return codeBlock(strings.Join(entries, "\n\n")), nil
}

func (h *BotHandler) UpdateWows(ctx context.Context, req *Request) ([]Response, error) {
	if _, err := h.deps.Ships.Refresh(ctx); err != nil {
		return upstreamFailed(req, "wows", err), nil
	}
	return []Response{Text(formatting.MsgUpdateSuccess)}, nil
}

func sheetError(req *Request, err error) ([]Response, bool) {
	switch {
	case errors.Is(err, services.ErrNoSheet):
		return []Response{Text(formatting.MsgNoSheet(req.Prefix))}, true
	case errors.Is(err, services.ErrNoMatch):
		return []Response{Text(formatting.MsgNoMatch)}, true
	case errors.Is(err, services.ErrInvalidDay):
		return []Response{Text(formatting.MsgInvalidDay)}, true
	}
	return nil, false
}

// memberName falls back to the raw id for members that left the guild.
func memberName(req *Request, userID string) string {
	member, err := req.Session.GuildMember(req.GuildID(), userID)
	if err != nil || member.User == nil {
		return userID
	}
	return displayName(member, member.User)
}

func codeBlock(text string) []Response {
	return Texts(formatting.CodeBlocks(text, "", formatting.MessageLimit)...)
}
