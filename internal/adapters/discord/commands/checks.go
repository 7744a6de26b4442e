package commands

import (
	"context"
	"fmt"

	"yasen/internal/adapters/discord/formatting"

	"github.com/bwmarrin/discordgo"
)

// Check runs before argument parsing. A *CheckFailure is shown to the user;
// any other error is a fault.
type Check func(ctx context.Context, req *Request) error

type CheckFailure struct {
	Message string
}

func (e *CheckFailure) Error() string {
	return e.Message
}

func OwnerOnly(isOwner func(userID string) bool) Check {
	return func(ctx context.Context, req *Request) error {
		if !isOwner(req.AuthorID()) {
			return &CheckFailure{Message: formatting.MsgOwnerOnly}
		}
		return nil
	}
}

func GuildOnly(ctx context.Context, req *Request) error {
	if !req.InGuild() {
		return &CheckFailure{Message: formatting.MsgGuildOnly}
	}
	return nil
}

var (
	AdminOnly      = requirePermission(discordgo.PermissionAdministrator, "Administrator")
	ManageRoles    = requirePermission(discordgo.PermissionManageRoles, "Manage Roles")
	ManageMessages = requirePermission(discordgo.PermissionManageMessages, "Manage Messages")
)

func requirePermission(permission int64, name string) Check {
	return func(ctx context.Context, req *Request) error {
		if !req.InGuild() {
			return &CheckFailure{Message: formatting.MsgPermission(name)}
		}

		perms, err := req.Session.UserChannelPermissions(req.AuthorID(), req.ChannelID())
		if err != nil {
			return fmt.Errorf("permissions of %s in %s: %w", req.AuthorID(), req.ChannelID(), err)
		}

		if perms&permission != permission && perms&discordgo.PermissionAdministrator == 0 {
			return &CheckFailure{Message: formatting.MsgPermission(name)}
		}
		return nil
	}
}

// NSFWOnly passes in direct messages and NSFW channels.
func NSFWOnly(ctx context.Context, req *Request) error {
	if !req.InGuild() {
		return nil
	}

	channel, err := req.Session.Channel(req.ChannelID())
	if err != nil {
		return fmt.Errorf("channel %s: %w", req.ChannelID(), err)
	}
	if !channel.NSFW {
		return &CheckFailure{Message: formatting.MsgNSFWOnly}
	}
	return nil
}
