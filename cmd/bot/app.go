package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"yasen/internal/adapters/booru"
	"yasen/internal/adapters/currency"
	"yasen/internal/adapters/discord"
	"yasen/internal/adapters/discord/commands"
	"yasen/internal/adapters/httpclient"
	"yasen/internal/adapters/latex"
	"yasen/internal/adapters/stackexchange"
	"yasen/internal/adapters/storage/file"
	"yasen/internal/adapters/storage/postgres"
	"yasen/internal/adapters/wows"
	"yasen/internal/adapters/youtube"
	"yasen/internal/config"
	"yasen/internal/core/domain"
	"yasen/internal/core/ports"
	"yasen/internal/core/services"
	"yasen/internal/store"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config        *config.Config
	backend       ports.DocumentBackend
	discord       *discordgo.Session
	flusher       *store.Flusher
	ships         *services.ShipCatalog
	metricsServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	prefixDoc := store.NewDocument("prefix", backend, func() domain.PrefixMap { return domain.PrefixMap{} })
	shameDoc := store.NewDocument("shamelist", backend, func() domain.ShameList { return domain.ShameList{} })
	sheetDoc := store.NewDocument("sheet", backend, func() domain.MatchSheet { return domain.MatchSheet{} })

	for _, load := range []func(context.Context) error{prefixDoc.Load, shameDoc.Load, sheetDoc.Load} {
		if err := load(ctx); err != nil {
			backend.Close()
			return nil, err
		}
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		backend.Close()
		return nil, err
	}

	overrides, err := loadHelpOverrides(filepath.Join(cfg.DataDir, "help.json"))
	if err != nil {
		backend.Close()
		return nil, err
	}

	assets, err := commands.LoadAssets(cfg.DataDir)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("load assets: %w", err)
	}

	warships := wows.NewClient(cfg.API.WowsApplicationID)
	prefixes := services.NewPrefixService(prefixDoc, cfg.DefaultPrefix)
	ships := services.NewShipCatalog(warships)

	registry := commands.NewRegistry()
	help := commands.NewHelpGenerator(registry, overrides, cfg.EmbedColour, func() string {
		return botAvatarURL(session)
	})

	handler := commands.NewBotHandler(commands.Deps{
		Config:    cfg,
		Prefixes:  prefixes,
		Shame:     services.NewShameService(shameDoc, warships),
		Sheet:     services.NewSheetService(sheetDoc),
		Ships:     ships,
		Music:     services.NewMusicQueue(youtube.NewResolver(httpclient.New("youtube", 2))),
		Currency:  currency.NewClient(cfg.API.CurrencyURL),
		Latex:     latex.NewClient(cfg.API.LatexURL),
		Answers:   stackexchange.NewClient(cfg.API.StackExchangeKey),
		SafeBooru: booru.NewClient("safebooru", cfg.API.SafeBooruURL),
		NSFWBooru: booru.NewClient("nsfwbooru", cfg.API.NSFWBooruURL),
		Help:      help,
		Assets:    assets,
		Info: commands.BotInfo{
			Version:    version,
			Started:    time.Now(),
			ClientID:   func() string { return botUserID(session) },
			GuildCount: func() int { return guildCount(session) },
		},
	})
	if err := handler.Register(registry); err != nil {
		backend.Close()
		return nil, fmt.Errorf("register commands: %w", err)
	}

	appCtx, cancel := context.WithCancel(context.Background())

	router := commands.NewRouter(registry, prefixes, discord.NewReporter(session, cfg.ErrorLogChannel), cfg.HandlerTimeout)
	presence := discord.NewPresence(session, cfg.PresenceMaxRetries)

	session.AddHandler(presence.ReadyHandler(appCtx, cfg.PresenceGame))
	session.AddHandler(router.HandleFunc(appCtx))

	return &App{
		config:  cfg,
		backend: backend,
		discord: session,
		flusher: store.NewFlusher(cfg.SaveInterval, prefixDoc, shameDoc, sheetDoc),
		ships:   ships,
		ctx:     appCtx,
		cancel:  cancel,
	}, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (ports.DocumentBackend, error) {
	if cfg.DatabaseURL != "" {
		backend, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to storage", "error", err)
			return nil, err
		}
		return backend, nil
	}

	backend, err := file.NewFileStore(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to open data directory", "dir", cfg.DataDir, "error", err)
		return nil, err
	}
	return backend, nil
}

func loadHelpOverrides(path string) (commands.HelpOverrides, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open help overrides: %w", err)
	}
	defer f.Close()

	overrides, err := commands.LoadHelpOverrides(f)
	if err != nil {
		return nil, fmt.Errorf("load help overrides %s: %w", path, err)
	}
	slog.Info("Help overrides loaded", "path", path, "commands", len(overrides))
	return overrides, nil
}

func (a *App) Run() error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	a.group, a.ctx = errgroup.WithContext(a.ctx)
	a.group.Go(func() error {
		return a.flusher.Start(a.ctx)
	})
	a.group.Go(func() error {
		if _, err := a.ships.Refresh(a.ctx); err != nil {
			slog.Warn("Ship encyclopedia unavailable", "error", err)
		}
		return nil
	})
	a.startMetricsServer()

	return nil
}

func (a *App) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := a.metricsServer
	go func() {
		slog.Info("Metrics server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

// Shutdown closes the gateway so no new commands arrive, stops background
// work, writes every dirty document and releases the backend. It is safe on
// a partially started App.
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close discord session: %w", err))
		}
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
	}

	if a.cancel != nil {
		a.cancel()
	}

	if a.group != nil {
		if err := a.group.Wait(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.flusher != nil {
		if err := a.flusher.FlushAll(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush documents: %w", err))
		}
	}

	if a.backend != nil {
		a.backend.Close()
	}

	return errors.Join(errs...)
}

func botUserID(s *discordgo.Session) string {
	s.State.RLock()
	defer s.State.RUnlock()
	if s.State.User == nil {
		return ""
	}
	return s.State.User.ID
}

func botAvatarURL(s *discordgo.Session) string {
	s.State.RLock()
	defer s.State.RUnlock()
	if s.State.User == nil {
		return ""
	}
	return s.State.User.AvatarURL("")
}

func guildCount(s *discordgo.Session) int {
	s.State.RLock()
	defer s.State.RUnlock()
	return len(s.State.Guilds)
}
