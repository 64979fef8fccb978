package notifications

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"tv-alert-relay/alert"
	"tv-alert-relay/config"
)

// Embed accent colors, matching the trade card palette
const (
	discordColorUp   = 0x00aa5e
	discordColorDown = 0xcc3333
)

// DiscordChannel posts to a Discord-compatible webhook. Default mode is a
// plain content message with the image URL on its own line (Discord
// unfurls it); embed mode wraps the body in a colored embed instead.
type DiscordChannel struct {
	client     *resty.Client
	webhookURL string
	useEmbeds  bool
	enabled    bool
}

type discordContentPayload struct {
	Content string `json:"content"`
}

type discordEmbedPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Image       *discordEmbedImage  `json:"image,omitempty"`
	Footer      *discordEmbedFooter `json:"footer,omitempty"`
}

type discordEmbedImage struct {
	URL string `json:"url"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

// NewDiscordChannel creates the Discord channel from configuration.
func NewDiscordChannel(cfg config.ChannelConfig) *DiscordChannel {
	return &DiscordChannel{
		client:     newRestyClient(),
		webhookURL: cfg.DiscordWebhookURL,
		useEmbeds:  cfg.DiscordUseEmbeds,
		enabled:    cfg.SendToDiscord && cfg.DiscordWebhookURL != "",
	}
}

func (c *DiscordChannel) Name() string { return "discord" }

// Send delivers the notification. Discord answers webhook posts with a
// bare HTTP status, so only the status code is checked.
func (c *DiscordChannel) Send(ctx context.Context, n Notification) Result {
	if !c.enabled {
		return Result{Success: true, Skipped: true}
	}

	var payload interface{}
	if c.useEmbeds {
		payload = c.embedPayload(n)
	} else {
		content := n.Body
		if n.ImageURL != "" {
			content += "\n" + n.ImageURL
		}
		payload = discordContentPayload{Content: content}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if resp.IsError() {
		return Result{Error: fmt.Sprintf("HTTP %d", resp.StatusCode())}
	}
	return Result{Success: true}
}

func (c *DiscordChannel) embedPayload(n Notification) discordEmbedPayload {
	color := discordColorUp
	if n.Kind == alert.KindBreakevenStop || n.Kind == alert.KindInitialStop {
		color = discordColorDown
	}

	embed := discordEmbed{
		Title:       fmt.Sprintf("%s %s", n.Symbol, n.Direction.HeaderLabel()),
		Description: n.Body,
		Color:       color,
		Footer:      &discordEmbedFooter{Text: string(n.Kind)},
	}
	if n.ImageURL != "" {
		embed.Image = &discordEmbedImage{URL: n.ImageURL}
	}
	return discordEmbedPayload{Embeds: []discordEmbed{embed}}
}
