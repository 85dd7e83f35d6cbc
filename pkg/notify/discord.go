package notify

import (
	"context"
	"fmt"
	"strings"

	"guarantor/pkg/config"
	"guarantor/pkg/dump"

	"github.com/bwmarrin/discordgo"
	"github.com/fr-str/log"
)

// discord caps message content at 2000 characters.
const maxContent = 2000

const Username = "guarantor"

func notifyErr(msg string, vars ...any) error {
	return fmt.Errorf("notify: "+msg+": %w", vars...)
}

// Executor is the part of *discordgo.Session the notifier needs.
type Executor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts "see dump at <path>" to a channel webhook.
type Discord struct {
	Exec      Executor
	WebhookID string
	Token     string
}

func NewDiscord() (Discord, error) {
	s, err := discordgo.New(fmt.Sprintf("Bot %s", config.DISCORD_TOKEN))
	if err != nil {
		return Discord{}, notifyErr("new session", err)
	}
	return Discord{
		Exec:      s,
		WebhookID: config.DISCORD_WEBHOOK_ID,
		Token:     config.DISCORD_WEBHOOK_TOKEN,
	}, nil
}

// Store implements dump.Sink.
func (d Discord) Store(ctx context.Context, a dump.Artifact) error {
	_, err := d.Exec.WebhookExecute(d.WebhookID, d.Token, false, &discordgo.WebhookParams{
		Username: Username,
		Content:  Message(a),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return notifyErr("webhook %s", d.WebhookID, err)
	}
	log.Trace("dump notification sent", log.String("path", a.Path))
	return nil
}

// Message renders the notification for a.
func Message(a dump.Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "see dump at `%s` (pid %d)\n", a.Path, a.PID)
	b.WriteString("```\n")
	b.WriteString(a.Diagnostic)
	b.WriteString("```")

	msg := b.String()
	if len(msg) <= maxContent {
		return msg
	}
	cut := msg[:maxContent-len("\n…```")]
	return strings.ToValidUTF8(cut, "") + "\n…```"
}
