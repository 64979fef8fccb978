package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tv-alert-relay/config"
)

// KookChannel forwards the message to a KOOK bot through the Tencent
// cloud function relay.
type KookChannel struct {
	client      *resty.Client
	functionURL string
	channelID   string
	enabled     bool
}

type kookPayload struct {
	ChannelID        string `json:"channelId"`
	FormattedMessage string `json:"formattedMessage"`
	MessageType      string `json:"messageType"`
	ImageURL         string `json:"imageUrl,omitempty"`
	Timestamp        int64  `json:"timestamp"`
	Symbol           string `json:"symbol"`
	Direction        string `json:"direction"`
}

type kookResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// NewKookChannel creates the KOOK channel from configuration.
func NewKookChannel(cfg config.ChannelConfig) *KookChannel {
	return &KookChannel{
		client:      newRestyClient(),
		functionURL: cfg.KookFunctionURL,
		channelID:   cfg.DefaultKookChannelID,
		enabled:     cfg.SendToKook && cfg.KookFunctionURL != "",
	}
}

func (c *KookChannel) Name() string { return "kook" }

// Send delivers the notification to the cloud function relay.
func (c *KookChannel) Send(ctx context.Context, n Notification) Result {
	if !c.enabled {
		return Result{Success: true, Skipped: true}
	}

	message := n.Body
	if n.ImageURL != "" {
		message += fmt.Sprintf("\n\n![交易图表](%s)", n.ImageURL)
	}

	payload := kookPayload{
		ChannelID:        c.channelID,
		FormattedMessage: message,
		MessageType:      string(n.Kind),
		ImageURL:         n.ImageURL,
		Timestamp:        time.Now().UnixMilli(),
		Symbol:           n.Symbol,
		Direction:        n.Direction.Display(),
	}

	var kookResp kookResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&kookResp).
		Post(c.functionURL)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if resp.IsError() {
		return Result{Error: fmt.Sprintf("HTTP %d", resp.StatusCode())}
	}
	return Result{Success: true}
}
