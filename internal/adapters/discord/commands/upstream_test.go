package commands

import (
	"context"
	"errors"
	"io"
	"testing"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:443: connect: connection refused")

func TestRouter_UpstreamFailuresAreNotFaults(t *testing.T) {
	tests := []struct {
		name    string
		guildID string
		author  string
		content string
		setup   func(bot *testBot)
		deps    testBotOption
	}{
		{
			name:    "utility currency",
			guildID: "g1",
			content: "?currency usd cad 5",
			deps: func(d *Deps) {
				d.Currency = &mockCurrency{convertFunc: func(ctx context.Context, from, to string, amount float64) (*domain.Conversion, error) {
					return nil, errConnRefused
				}}
			},
		},
		{
			name:    "utility latex",
			guildID: "g1",
			content: "?latex x^2",
			deps: func(d *Deps) {
				d.Latex = &mockLatex{renderFunc: func(ctx context.Context, expression string) (io.ReadCloser, error) {
					return nil, errConnRefused
				}}
			},
		},
		{
			name:    "utility stackoverflow",
			guildID: "g1",
			content: "?so how do I exit vim",
			deps: func(d *Deps) {
				d.Answers = &mockAnswers{topAnswerFunc: func(ctx context.Context, question string) (*domain.Answer, error) {
					return nil, errConnRefused
				}}
			},
		},
		{
			name:    "wows shame by nickname",
			guildID: "g1",
			content: "?shame Someone",
			setup: func(bot *testBot) {
				bot.api.findPlayerIDFunc = func(ctx context.Context, region domain.Region, nickname string) (int64, error) {
					return 0, errConnRefused
				}
			},
		},
		{
			name:    "wows shame stats",
			guildID: "g1",
			content: "?shame Someone",
			setup: func(bot *testBot) {
				bot.api.findPlayerIDFunc = func(ctx context.Context, region domain.Region, nickname string) (int64, error) {
					return 7, nil
				}
				bot.api.playerStatsFunc = func(ctx context.Context, region domain.Region, playerID int64) (*domain.PlayerStats, error) {
					return nil, errConnRefused
				}
			},
		},
		{
			name:    "wows addshame",
			guildID: "g1",
			content: "?addshame Someone na",
			setup: func(bot *testBot) {
				bot.api.findPlayerIDFunc = func(ctx context.Context, region domain.Region, nickname string) (int64, error) {
					return 0, errConnRefused
				}
			},
		},
		{
			name:    "wows updatewows",
			guildID: "g1",
			author:  "owner",
			content: "?updatewows",
			setup: func(bot *testBot) {
				bot.api.shipsFunc = func(ctx context.Context, region domain.Region) ([]domain.Ship, error) {
					return nil, errConnRefused
				}
			},
		},
		{
			name:    "weeb umi",
			guildID: "g1",
			content: "?umi",
			setup: func(bot *testBot) {
				bot.images.randomFunc = func(ctx context.Context, tags []string) (*domain.Image, error) {
					return nil, errConnRefused
				}
			},
		},
		{
			name:    "nsfw booru",
			content: "?booru some_tag",
			setup: func(bot *testBot) {
				bot.nsfw.randomFunc = func(ctx context.Context, tags []string) (*domain.Image, error) {
					return nil, errConnRefused
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []testBotOption
			if tt.deps != nil {
				opts = append(opts, tt.deps)
			}
			bot := newTestBot(t, "", `{"g1": {}}`, "", opts...)
			if tt.setup != nil {
				tt.setup(bot)
			}
			author := tt.author
			if author == "" {
				author = "u1"
			}

			bot.send(tt.guildID, author, tt.content)

			got := bot.session.contents()
			if len(got) != 1 || got[0] != formatting.MsgUpstreamFailed {
				t.Errorf("expected a single apology, got %q", got)
			}
			if bot.reporter.count() != 0 {
				t.Errorf("expected no incident reports, got %d", bot.reporter.count())
			}
		})
	}
}

func TestRouter_AddShameUpstreamFailureKeepsList(t *testing.T) {
	bot := newTestBot(t, "", `{"g1": {}}`, "")
	bot.api.findPlayerIDFunc = func(ctx context.Context, region domain.Region, nickname string) (int64, error) {
		return 0, errConnRefused
	}

	bot.send("g1", "u1", "?addshame Someone")

	if saved := bot.backend.saved("shamelist"); saved != `{"g1": {}}` {
		t.Errorf("shamelist must not change, got %s", saved)
	}
}

func unknownEntity(code int) error {
	return &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: code, Message: "Unknown"}}
}

func TestRouter_UnknownUsersAreNotFaults(t *testing.T) {
	t.Run("avatar of unknown user", func(t *testing.T) {
		bot := newTestBot(t, "", "", "")
		bot.session.userFunc = func(userID string) (*discordgo.User, error) {
			return nil, unknownEntity(discordgo.ErrCodeUnknownUser)
		}

		bot.send("g1", "u1", "?avatar 123456")

		if got := bot.session.contents(); len(got) != 1 || got[0] != formatting.MsgUserNotFound {
			t.Errorf("unexpected output: %q", got)
		}
		if bot.reporter.count() != 0 {
			t.Errorf("expected no incident reports, got %d", bot.reporter.count())
		}
	})

	t.Run("joined of non member", func(t *testing.T) {
		bot := newTestBot(t, "", "", "")
		bot.session.memberFunc = func(guildID, userID string) (*discordgo.Member, error) {
			return nil, unknownEntity(discordgo.ErrCodeUnknownMember)
		}

		bot.send("g1", "u1", "?joined 123456")

		if got := bot.session.contents(); len(got) != 1 || got[0] != formatting.MsgMemberNotFound {
			t.Errorf("unexpected output: %q", got)
		}
		if bot.reporter.count() != 0 {
			t.Errorf("expected no incident reports, got %d", bot.reporter.count())
		}
	})

	t.Run("other REST failures are still faults", func(t *testing.T) {
		bot := newTestBot(t, "", "", "")
		bot.session.userFunc = func(userID string) (*discordgo.User, error) {
			return nil, unknownEntity(discordgo.ErrCodeMissingAccess)
		}

		bot.send("g1", "u1", "?avatar 123456")

		if got := bot.session.contents(); len(got) != 1 || got[0] != formatting.MsgFault {
			t.Errorf("unexpected output: %q", got)
		}
		if bot.reporter.count() != 1 {
			t.Errorf("expected one incident report, got %d", bot.reporter.count())
		}
	})
}
