package commands

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"yasen/internal/config"
	"yasen/internal/core/domain"
	"yasen/internal/core/services"
	"yasen/internal/store"

	"github.com/bwmarrin/discordgo"
)

type mockSession struct {
	sendFunc        func(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	editFunc        func(channelID, messageID, content string) (*discordgo.Message, error)
	channelFunc     func(channelID string) (*discordgo.Channel, error)
	permissionsFunc func(userID, channelID string) (int64, error)
	userFunc        func(userID string) (*discordgo.User, error)
	memberFunc      func(guildID, userID string) (*discordgo.Member, error)

	mu    sync.Mutex
	sent  []*discordgo.MessageSend
	edits []string
}

func (m *mockSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	m.sent = append(m.sent, data)
	m.mu.Unlock()

	if m.sendFunc != nil {
		return m.sendFunc(channelID, data)
	}
	return &discordgo.Message{ID: "sent-1", ChannelID: channelID, Content: data.Content}, nil
}

func (m *mockSession) ChannelMessageEdit(channelID, messageID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	m.edits = append(m.edits, content)
	m.mu.Unlock()

	if m.editFunc != nil {
		return m.editFunc(channelID, messageID, content)
	}
	return &discordgo.Message{ID: messageID, ChannelID: channelID, Content: content}, nil
}

func (m *mockSession) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if m.channelFunc != nil {
		return m.channelFunc(channelID)
	}
	return &discordgo.Channel{ID: channelID}, nil
}

func (m *mockSession) UserChannelPermissions(userID, channelID string, _ ...discordgo.RequestOption) (int64, error) {
	if m.permissionsFunc != nil {
		return m.permissionsFunc(userID, channelID)
	}
	return 0, nil
}

func (m *mockSession) User(userID string, _ ...discordgo.RequestOption) (*discordgo.User, error) {
	if m.userFunc != nil {
		return m.userFunc(userID)
	}
	return &discordgo.User{ID: userID, Username: "user-" + userID}, nil
}

func (m *mockSession) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	if m.memberFunc != nil {
		return m.memberFunc(guildID, userID)
	}
	return &discordgo.Member{GuildID: guildID, User: &discordgo.User{ID: userID, Username: "user-" + userID}}, nil
}

// contents returns the text of every sent message, in order.
func (m *mockSession) contents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	for i, s := range m.sent {
		out[i] = s.Content
	}
	return out
}

func (m *mockSession) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type staticPrefix string

func (p staticPrefix) Resolve(string) string { return string(p) }

type report struct {
	header string
	trace  string
}

type mockReporter struct {
	mu      sync.Mutex
	reports []report
}

func (m *mockReporter) Report(ctx context.Context, header, trace string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report{header: header, trace: trace})
	return "incident"
}

func (m *mockReporter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

type memoryBackend struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{docs: make(map[string][]byte)}
}

func (m *memoryBackend) Load(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[name], nil
}

func (m *memoryBackend) Save(ctx context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = data
	return nil
}

func (m *memoryBackend) Close() {}

func (m *memoryBackend) saved(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.docs[name])
}

func loadDoc[T any](t *testing.T, backend *memoryBackend, name, raw string, empty func() T) *store.Document[T] {
	t.Helper()
	if raw != "" {
		backend.docs[name] = []byte(raw)
	}
	doc := store.NewDocument(name, backend, empty)
	if err := doc.Load(context.Background()); err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return doc
}

type mockWarshipsAPI struct {
	findPlayerIDFunc func(ctx context.Context, region domain.Region, nickname string) (int64, error)
	playerStatsFunc  func(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error)
	shipsFunc        func(ctx context.Context, region domain.Region) ([]domain.Ship, error)
}

func (m *mockWarshipsAPI) FindPlayerID(ctx context.Context, region domain.Region, nickname string) (int64, error) {
	if m.findPlayerIDFunc != nil {
		return m.findPlayerIDFunc(ctx, region, nickname)
	}
	return 0, domain.ErrNotFound
}

func (m *mockWarshipsAPI) PlayerStats(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error) {
	if m.playerStatsFunc != nil {
		return m.playerStatsFunc(ctx, region, playerID)
	}
	return &domain.PlayerStats{PlayerID: playerID, Region: region}, nil
}

func (m *mockWarshipsAPI) Ships(ctx context.Context, region domain.Region) ([]domain.Ship, error) {
	if m.shipsFunc != nil {
		return m.shipsFunc(ctx, region)
	}
	return nil, nil
}

type mockCurrency struct {
	convertFunc func(ctx context.Context, from, to string, amount float64) (*domain.Conversion, error)
}

func (m *mockCurrency) Convert(ctx context.Context, from, to string, amount float64) (*domain.Conversion, error) {
	return m.convertFunc(ctx, from, to, amount)
}

type mockLatex struct {
	renderFunc func(ctx context.Context, expression string) (io.ReadCloser, error)
}

func (m *mockLatex) Render(ctx context.Context, expression string) (io.ReadCloser, error) {
	return m.renderFunc(ctx, expression)
}

type mockImages struct {
	randomFunc func(ctx context.Context, tags []string) (*domain.Image, error)
	tags       [][]string
}

func (m *mockImages) Random(ctx context.Context, tags []string) (*domain.Image, error) {
	m.tags = append(m.tags, tags)
	if m.randomFunc != nil {
		return m.randomFunc(ctx, tags)
	}
	return nil, domain.ErrNotFound
}

type mockAnswers struct {
	topAnswerFunc func(ctx context.Context, question string) (*domain.Answer, error)
}

func (m *mockAnswers) TopAnswer(ctx context.Context, question string) (*domain.Answer, error) {
	return m.topAnswerFunc(ctx, question)
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, url string) (*domain.Track, error)
}

func (m *mockResolver) Resolve(ctx context.Context, url string) (*domain.Track, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, url)
	}
	return &domain.Track{ID: "id", Title: "Song", Duration: "3m0s", URL: url}, nil
}

// testBot is a fully wired handler set backed by in-memory documents.
type testBot struct {
	backend  *memoryBackend
	api      *mockWarshipsAPI
	images   *mockImages
	nsfw     *mockImages
	handler  *BotHandler
	registry *Registry
	router   *Router
	reporter *mockReporter
	session  *mockSession
}

type testBotOption func(*Deps)

func newTestBot(t *testing.T, prefixJSON, shameJSON, sheetJSON string, opts ...testBotOption) *testBot {
	t.Helper()

	backend := newMemoryBackend()
	prefixDoc := loadDoc(t, backend, "prefix", prefixJSON, func() domain.PrefixMap { return domain.PrefixMap{} })
	shameDoc := loadDoc(t, backend, "shamelist", shameJSON, func() domain.ShameList { return domain.ShameList{} })
	sheetDoc := loadDoc(t, backend, "sheet", sheetJSON, func() domain.MatchSheet { return domain.MatchSheet{} })

	cfg := config.Default()
	cfg.OwnerIDs = []string{"owner"}

	api := &mockWarshipsAPI{}
	images := &mockImages{}
	nsfw := &mockImages{}
	registry := NewRegistry()

	deps := Deps{
		Config:    cfg,
		Prefixes:  services.NewPrefixService(prefixDoc, cfg.DefaultPrefix),
		Shame:     services.NewShameService(shameDoc, api),
		Sheet:     services.NewSheetService(sheetDoc),
		Ships:     services.NewShipCatalog(api),
		Music:     services.NewMusicQueue(&mockResolver{}),
		SafeBooru: images,
		NSFWBooru: nsfw,
		Help:      NewHelpGenerator(registry, nil, cfg.EmbedColour, nil),
		Assets:    &Assets{Lewd: []string{lennyFace}},
		Info: BotInfo{
			Version:    "test",
			Started:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			ClientID:   func() string { return "client" },
			GuildCount: func() int { return 3 },
		},
	}
	for _, opt := range opts {
		opt(&deps)
	}

	handler := NewBotHandler(deps)
	handler.intn = func(n int) int { return 0 }
	if err := handler.Register(registry); err != nil {
		t.Fatalf("register commands: %v", err)
	}

	reporter := &mockReporter{}
	return &testBot{
		backend:  backend,
		api:      api,
		images:   images,
		nsfw:     nsfw,
		handler:  handler,
		registry: registry,
		router:   NewRouter(registry, deps.Prefixes, reporter, time.Second),
		reporter: reporter,
		session:  &mockSession{},
	}
}

// send dispatches content as if author posted it in guild (empty for a DM).
func (b *testBot) send(guildID, authorID, content string) {
	b.router.Handle(context.Background(), b.session, newMessage(guildID, authorID, content))
}

func newMessage(guildID, authorID, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "msg-1",
		ChannelID: "chan-1",
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID, Username: "user-" + authorID},
	}
}

func newRequest(s Session, guildID, authorID string, args Args) *Request {
	return &Request{
		Session: s,
		Message: newMessage(guildID, authorID, ""),
		Prefix:  "?",
		Command: &Command{Name: "test"},
		Args:    args,
	}
}

func assertTexts(t *testing.T, responses []Response, want ...string) {
	t.Helper()
	if len(responses) != len(want) {
		t.Fatalf("expected %d responses, got %d", len(want), len(responses))
	}
	for i, r := range responses {
		text, ok := r.(*TextResponse)
		if !ok {
			t.Fatalf("response %d: expected text, got %T", i, r)
		}
		if text.Content != want[i] {
			t.Errorf("response %d: expected %q, got %q", i, want[i], text.Content)
		}
	}
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected %q to contain %q", s, substr)
	}
}
