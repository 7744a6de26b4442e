package formatting

import (
	"fmt"
	"strings"
)

const (
	MsgFault           = ":x: I ran into a critical error. It has been reported to my developer."
	MsgOwnerOnly       = "This is an owner only command."
	MsgGuildOnly       = "This command cannot be used in private messages."
	MsgNSFWOnly        = "NSFW commands must be used in DM or a channel with NSFW enabled."
	MsgInvalidPrefix   = "The prefix must be exactly one character."
	MsgCurrencyCodes   = "Please enter valid currency codes for the base currency and the target currency."
	MsgCurrencyAmount  = "Please enter a number greater than 0 for the amount."
	MsgLatexFailed     = "I couldn't compile that LaTeX expression."
	MsgNoAnswer        = "Sorry, I couldn't find an answer to that question."
	MsgRollFormat      = "Format has to be in NdN!"
	MsgBreakMe         = "Are you trying to break me?"
	MsgSaltPercentage  = "The percentage has to be between 0 and 100%."
	MsgNoImage         = "Sorry, I couldn't find any image."
	MsgJoke            = "https://www.youtube.com/watch?v=THrCQ1ftuTU"
	MsgKyubey          = "／人◕ ‿‿ ◕人＼"
	MsgShipNotFound    = "Ship not found!"
	MsgPlayerNotFound  = "Player not found!"
	MsgShameAdded      = "Add success!"
	MsgShameEdited     = "Edit Success!"
	MsgShameRemoved    = "Remove success!"
	MsgShameNotListed  = "Removed failed, you were not in the shamelist to begin with."
	MsgShameListEmpty  = "This server's shamelist is empty!"
	MsgSheetCreated    = "New spread sheet created! The old one has been removed!"
	MsgInvalidDay      = "Please enter a valid date!"
	MsgNoMatch         = "There doesn't seem to be a match with that name."
	MsgSheetEmpty      = "There doesn't seem to be any matches in this spread sheet!"
	MsgUpdateSuccess   = "Update Success!"
	MsgVideoFailed     = "I couldn't load that video."
	MsgQueueEmpty      = "The queue is empty."
	MsgNothingToSkip   = "Nothing to skip."
	MsgHelpDescription = "For detailed help please use %shelp [command_name]"
	MsgPing            = ":ping_pong: Pong!"
	MsgPrivateProfile  = "This player's profile is private."
	MsgUpstreamFailed  = "Sorry, I couldn't reach that service right now. Please try again later."
	MsgUserNotFound    = "User not found!"
	MsgMemberNotFound  = "That user is not a member of this server."
)

func MsgPermission(permission string) string {
	return fmt.Sprintf(":no_entry_sign: Sorry, you need %s permission to use this command.", permission)
}

func MsgMissingArgument(name string) string {
	return fmt.Sprintf("Missing required argument `%s`.", name)
}

func MsgInvalidArgument(name, expected string) string {
	return fmt.Sprintf("Invalid value for `%s`: expected %s.", name, expected)
}

func MsgPrefixSet(prefix string) string {
	return fmt.Sprintf("Prefix for this server has been set to `%s`.", prefix)
}

func MsgCommandNotFound(name string) string {
	return fmt.Sprintf("Command `%s` not found.", name)
}

func MsgPong(latencyMs int64) string {
	return fmt.Sprintf(":ping_pong: Pong! | %dms", latencyMs)
}

func MsgJoined(name, date string) string {
	return fmt.Sprintf("%s joined at %s", name, date)
}

func MsgSalt(chance string) string {
	return fmt.Sprintf("about %s%% of dropping", chance)
}

func MsgInvalidRegion(regions []string) string {
	return fmt.Sprintf("Region must be in [%s] or blank for default(NA)", strings.Join(regions, ", "))
}

func MsgNoSheet(prefix string) string {
	return fmt.Sprintf("Your server doesn't seem to have a spreadsheet, please consult `%shelp newsheet`", prefix)
}

func MsgMatchAdded(when string) string {
	return fmt.Sprintf("Match on %s added!", when)
}

func MsgMatchRemoved(name string) string {
	return fmt.Sprintf("Match: %s removed!", name)
}

func MsgMatchesJoined(names []string) string {
	return "You have joined matches: " + strings.Join(names, ", ")
}

func MsgMatchesQuit(names []string) string {
	return "You have quit the matches: " + strings.Join(names, ", ")
}

func MsgMatchEntry(when, name string, players []string) string {
	return fmt.Sprintf("%s: %s\nPlayers: %s\nPlayer count: %d", when, name, strings.Join(players, ", "), len(players))
}

func MsgQueued(title, duration string, position int) string {
	return fmt.Sprintf("Queued **%s** (%s) at position %d.", title, duration, position)
}

func MsgSkipped(title string) string {
	return fmt.Sprintf("Skipped **%s**.", title)
}

func MsgCleared(n int) string {
	return fmt.Sprintf("Cleared %d tracks from the queue.", n)
}

func MsgIncident(header, id string) string {
	return fmt.Sprintf("%s\nIncident: `%s`", header, id)
}

func MsgConversion(amount float64, from string, result float64, to string) string {
	return fmt.Sprintf("%.2f %s = %.2f %s", amount, from, result, to)
}

func MsgShip(name string, tier int, price string, health int, citadel, casemate, deck, extremities string) string {
	return fmt.Sprintf("```\n%s\nTier: %d\nPrice: %s\nHit Points: %d\nCitadel armor: %s mm\n"+
		"Gun Casemate Armor: %s mm\nArmoured Deck: %s mm\nForward and After Ends Armor: %s mm\n```",
		name, tier, price, health, citadel, casemate, deck, extremities)
}

func MsgQueueEntry(position int, title, duration, requestedBy string) string {
	return fmt.Sprintf("%d. **%s** (%s) requested by <@%s>", position, title, duration, requestedBy)
}
