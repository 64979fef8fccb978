package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"tv-alert-relay/alert"
)

const outboundTimeout = 10 * time.Second

// Notification is the channel-agnostic content produced by the pipeline.
type Notification struct {
	Body      string
	Kind      alert.EventKind
	Symbol    string
	Direction alert.Direction
	ImageURL  string // optional trade-card image
}

// Result is one channel's delivery outcome. Delivery is best-effort: a
// failed channel is reported, never retried, and never fails the request.
type Result struct {
	Success    bool   `json:"success"`
	Skipped    bool   `json:"skipped,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Channel is one outbound notification destination.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) Result
}

// Dispatcher fans a notification out to every configured channel.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

// Dispatch sends to all channels concurrently and collects one Result per
// channel name. A slow or failing channel never blocks its siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) map[string]Result {
	results := make(map[string]Result, len(d.channels))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ch := range d.channels {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()
			start := time.Now()
			res := ch.Send(ctx, n)
			res.DurationMs = time.Since(start).Milliseconds()
			if res.Error != "" {
				log.Printf("⚠️  %s delivery failed: %s", ch.Name(), res.Error)
			}
			mu.Lock()
			results[ch.Name()] = res
			mu.Unlock()
		}(ch)
	}
	wg.Wait()

	return results
}

// newRestyClient builds the shared outbound HTTP client configuration.
func newRestyClient() *resty.Client {
	return resty.New().
		SetTimeout(outboundTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "TV-Alert-Relay/1.0")
}
