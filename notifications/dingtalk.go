package notifications

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"tv-alert-relay/config"
)

// DingTalkChannel posts the message as DingTalk markdown, either straight
// to the robot webhook or wrapped through the relay cloud function.
type DingTalkChannel struct {
	client     *resty.Client
	webhookURL string
	relayURL   string
	useRelay   bool
	enabled    bool
}

type dingTalkMarkdownPayload struct {
	MsgType  string `json:"msgtype"`
	Markdown struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"markdown"`
	At struct {
		IsAtAll bool `json:"isAtAll"`
	} `json:"at"`
}

type relayPayload struct {
	Message         string      `json:"message"`
	NeedImage       bool        `json:"needImage"`
	ImageParams     interface{} `json:"imageParams"`
	DingTalkWebhook string      `json:"dingtalkWebhook"`
}

type relayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewDingTalkChannel creates the DingTalk channel from configuration.
func NewDingTalkChannel(cfg config.ChannelConfig) *DingTalkChannel {
	return &DingTalkChannel{
		client:     newRestyClient(),
		webhookURL: cfg.DingTalkWebhook,
		relayURL:   cfg.RelayServiceURL,
		useRelay:   cfg.UseRelayService,
		enabled:    cfg.SendToDingTalk && cfg.DingTalkWebhook != "",
	}
}

func (c *DingTalkChannel) Name() string { return "dingtalk" }

// Send delivers the notification. The trade-card image rides along as a
// markdown image link since DingTalk renders markdown bodies.
func (c *DingTalkChannel) Send(ctx context.Context, n Notification) Result {
	if !c.enabled {
		return Result{Success: true, Skipped: true}
	}

	message := n.Body
	if n.ImageURL != "" {
		message += fmt.Sprintf("\n\n![交易图表](%s)", n.ImageURL)
	}

	if c.useRelay {
		return c.sendViaRelay(ctx, message)
	}
	return c.sendDirect(ctx, message)
}

func (c *DingTalkChannel) sendDirect(ctx context.Context, message string) Result {
	payload := dingTalkMarkdownPayload{MsgType: "markdown"}
	payload.Markdown.Title = "交易通知"
	payload.Markdown.Text = message

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

func (c *DingTalkChannel) sendViaRelay(ctx context.Context, message string) Result {
	payload := relayPayload{
		Message:         message,
		NeedImage:       false,
		DingTalkWebhook: c.webhookURL,
	}

	var relayResp relayResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&relayResp).
		Post(c.relayURL)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if resp.IsError() {
		return Result{Error: fmt.Sprintf("HTTP %d", resp.StatusCode())}
	}
	if !relayResp.Success {
		msg := relayResp.Error
		if msg == "" {
			msg = "relay reported failure"
		}
		return Result{Error: msg}
	}
	return Result{Success: true}
}
