package commands

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/config"
	"yasen/internal/core/ports"
	"yasen/internal/core/services"
)

const (
	GroupUtility         = "Utility"
	GroupFun             = "Fun"
	GroupWeeb            = "Weeb"
	GroupNsfw            = "Nsfw"
	GroupWorldOfWarships = "WorldOfWarships"
	GroupMusic           = "Music"
)

// BotInfo describes the running bot for the info command.
type BotInfo struct {
	Version    string
	Started    time.Time
	ClientID   func() string
	GuildCount func() int
}

type Deps struct {
	Config    *config.Config
	Prefixes  *services.PrefixService
	Shame     *services.ShameService
	Sheet     *services.SheetService
	Ships     *services.ShipCatalog
	Music     *services.MusicQueue
	Currency  ports.CurrencyConverter
	Latex     ports.LatexRenderer
	Answers   ports.AnswerSearcher
	SafeBooru ports.ImageSearcher
	NSFWBooru ports.ImageSearcher
	Help      *HelpGenerator
	Assets    *Assets
	Info      BotInfo
}

type BotHandler struct {
	deps Deps

	intn func(n int) int
	now  func() time.Time
}

func NewBotHandler(deps Deps) *BotHandler {
	if deps.Assets == nil {
		deps.Assets = &Assets{Lewd: []string{lennyFace}}
	}
	return &BotHandler{
		deps: deps,
		intn: rand.IntN,
		now:  time.Now,
	}
}

// Register adds every command to the registry in help listing order.
func (h *BotHandler) Register(registry *Registry) error {
	groups := [][]*Command{
		h.utilityCommands(),
		h.funCommands(),
		h.weebCommands(),
		h.nsfwCommands(),
		h.wowsCommands(),
		h.musicCommands(),
	}

	for _, cmds := range groups {
		for _, cmd := range cmds {
			if err := registry.Register(cmd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *BotHandler) pick(items []string) string {
	return items[h.intn(len(items))]
}

func openFile(path string) (*FileResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	name := filepath.Base(path)
	return File(name, mime.TypeByExtension(filepath.Ext(name)), f), nil
}

// upstreamFailed turns an external service failure into an apology. These
// are not faults of the bot and are not reported as incidents.
func upstreamFailed(req *Request, service string, err error) []Response {
	slog.Warn("Upstream request failed",
		"command", req.Command.Name,
		"service", service,
		"guild_id", req.GuildID(),
		"error", err,
	)
	return []Response{Text(formatting.MsgUpstreamFailed)}
}

func usage(description string, usages ...string) HelpDescriptor {
	return HelpDescriptor{
		Description: description,
		Sections:    []HelpSection{{Name: "Usage", Value: strings.Join(usages, "\n")}},
	}
}
