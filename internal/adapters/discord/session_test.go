package discord

import (
	"testing"

	"yasen/internal/config"

	"github.com/bwmarrin/discordgo"
)

func TestNewSession_Success(t *testing.T) {
	cfg := &config.Config{
		Token: "MTk.test.token",
	}

	session, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if session.Identify.Intents != Intents {
		t.Errorf("Expected intents %d, got %d", Intents, session.Identify.Intents)
	}
}

func TestNewSession_IntentsConfiguration(t *testing.T) {
	session, err := NewSession(&config.Config{Token: "test-token"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	required := []struct {
		name   string
		intent discordgo.Intent
	}{
		{"Guilds", discordgo.IntentsGuilds},
		{"GuildMessages", discordgo.IntentsGuildMessages},
		{"DirectMessages", discordgo.IntentsDirectMessages},
		{"MessageContent", discordgo.IntentsMessageContent},
	}

	for _, r := range required {
		t.Run(r.name, func(t *testing.T) {
			if session.Identify.Intents&r.intent == 0 {
				t.Errorf("Expected intent %s to be set", r.name)
			}
		})
	}
}

func TestNewSession_TokenPrefixing(t *testing.T) {
	session, err := NewSession(&config.Config{Token: "my-token-123"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectedToken := "Bot my-token-123"
	if session.Token != expectedToken {
		t.Errorf("Expected token '%s', got '%s'", expectedToken, session.Token)
	}
}
