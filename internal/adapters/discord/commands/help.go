package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"yasen/internal/adapters/discord/formatting"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const helpAuthor = "Yasen Help"

type HelpOverrides map[string]HelpDescriptor

// LoadHelpOverrides reads a JSON object mapping command names to either a
// raw help string or an object with a "Description" key and further sections.
// Section order follows the document.
func LoadHelpOverrides(r io.Reader) (HelpOverrides, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	overrides := make(HelpOverrides)
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		desc, err := readDescriptor(dec)
		if err != nil {
			return nil, fmt.Errorf("help for %s: %w", name, err)
		}
		if err := desc.validate(); err != nil {
			return nil, fmt.Errorf("help for %s: %w", name, err)
		}
		overrides[name] = desc
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return overrides, nil
}

func readDescriptor(dec *json.Decoder) (HelpDescriptor, error) {
	tok, err := dec.Token()
	if err != nil {
		return HelpDescriptor{}, err
	}

	switch v := tok.(type) {
	case string:
		return HelpDescriptor{Raw: v}, nil
	case json.Delim:
		if v != '{' {
			return HelpDescriptor{}, fmt.Errorf("unexpected %v", v)
		}
	default:
		return HelpDescriptor{}, fmt.Errorf("unexpected %v", v)
	}

	var desc HelpDescriptor
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return HelpDescriptor{}, err
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return HelpDescriptor{}, fmt.Errorf("section %s: %w", key, err)
		}
		if key == "Description" {
			desc.Description = value
			continue
		}
		desc.Sections = append(desc.Sections, HelpSection{Name: key, Value: value})
	}

	return desc, expectDelim(dec, '}')
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

type HelpGenerator struct {
	registry  *Registry
	overrides HelpOverrides
	colour    int
	avatarURL func() string
}

func NewHelpGenerator(registry *Registry, overrides HelpOverrides, colour int, avatarURL func() string) *HelpGenerator {
	if avatarURL == nil {
		avatarURL = func() string { return "" }
	}
	return &HelpGenerator{
		registry:  registry,
		overrides: overrides,
		colour:    colour,
		avatarURL: avatarURL,
	}
}

// General lists every command by group.
func (h *HelpGenerator) General(prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:       h.colour,
		Description: fmt.Sprintf(formatting.MsgHelpDescription, prefix),
		Author:      &discordgo.MessageEmbedAuthor{Name: helpAuthor, IconURL: h.avatarURL()},
	}

	for _, group := range h.registry.Groups() {
		names := make([]string, 0, len(group.Commands))
		for _, cmd := range group.Commands {
			names = append(names, "`"+cmd.Name+"`")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  SplitCamel(group.Name) + " Commands",
			Value: strings.Join(names, ", "),
		})
	}

	return embed
}

// Command renders help for a command name or alias.
func (h *HelpGenerator) Command(name, prefix string) (*discordgo.MessageEmbed, bool) {
	cmd, ok := h.registry.Lookup(name)
	if !ok {
		return nil, false
	}

	desc := cmd.Help
	if override, ok := h.overrides[cmd.Name]; ok {
		desc = override
	}

	if desc.Raw != "" {
		return &discordgo.MessageEmbed{
			Color:       h.colour,
			Description: desc.Raw,
		}, true
	}

	embed := &discordgo.MessageEmbed{
		Color:       h.colour,
		Description: withPrefix(desc.Description, prefix),
		Author:      &discordgo.MessageEmbedAuthor{Name: cmd.Name, IconURL: h.avatarURL()},
	}
	for _, s := range desc.Sections {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   s.Name,
			Value:  withPrefix(s.Value, prefix),
			Inline: false,
		})
	}
	return embed, true
}

func withPrefix(s, prefix string) string {
	return strings.ReplaceAll(s, "{prefix}", prefix)
}

// SplitCamel turns "WorldOfWarships" into "World Of Warships".
func SplitCamel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(runes[i-1]) ||
			(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English, cases.NoLower).String(b.String())
}
