package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"tv-alert-relay/alert"
	"tv-alert-relay/card"
	"tv-alert-relay/notifications"
)

// TradingView can be pointed at either a JSON or a plain-text alert
// template, so the body size stays small
const maxAlertBody = 64 * 1024

type webhookResponse struct {
	OK       bool                            `json:"ok"`
	Skipped  bool                            `json:"skipped,omitempty"`
	Reason   string                          `json:"reason,omitempty"`
	Kind     string                          `json:"kind,omitempty"`
	Symbol   string                          `json:"symbol,omitempty"`
	ImageURL string                          `json:"image_url,omitempty"`
	Results  map[string]notifications.Result `json:"results,omitempty"`
}

// handleWebhook ingests one alert: clean, gate, classify, extract,
// compose, fan out, persist, broadcast. Channel failures never fail the
// request; TradingView disables webhooks that keep erroring.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("❌ Panic processing webhook: %v", rec)
			respondWithError(w, http.StatusInternalServerError, "internal error", nil)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxAlertBody))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read body", err)
		return
	}

	text := extractAlertText(raw)
	cleaned := alert.Clean(text)

	if !alert.Actionable(cleaned) {
		log.Printf("⏭️  Skipping non-actionable alert (%d bytes)", len(raw))
		if s.repo != nil {
			if _, err := s.repo.SaveAlert(alert.KindOther, alert.Fields{}, text, "", "", true); err != nil {
				log.Printf("⚠️  Failed to persist skipped alert: %v", err)
			}
		}
		writeJSON(w, http.StatusOK, webhookResponse{OK: true, Skipped: true, Reason: "not actionable"})
		return
	}

	ctx := r.Context()
	kind := alert.Classify(cleaned)
	fields := alert.Extract(cleaned)
	body := s.composer.Compose(ctx, kind, fields, cleaned)
	imageURL := s.imageURLFor(ctx, kind, fields)

	log.Printf("📨 Alert %s %s -> dispatching", kind, fields.Symbol)

	results := s.dispatcher.Dispatch(ctx, notifications.Notification{
		Body:      body,
		Kind:      kind,
		Symbol:    fields.Symbol,
		Direction: fields.ResolvedDirection(),
		ImageURL:  imageURL,
	})

	if s.repo != nil {
		alertID, err := s.repo.SaveAlert(kind, fields, text, body, imageURL, false)
		if err != nil {
			log.Printf("⚠️  Failed to persist alert: %v", err)
		} else if err := s.repo.SaveDeliveries(alertID, results); err != nil {
			log.Printf("⚠️  Failed to persist delivery logs: %v", err)
		}
	}

	s.broker.Broadcast("alert_processed", map[string]interface{}{
		"kind":      string(kind),
		"symbol":    fields.Symbol,
		"direction": fields.ResolvedDirection().Display(),
		"image_url": imageURL,
		"results":   results,
	})

	writeJSON(w, http.StatusOK, webhookResponse{
		OK:       true,
		Kind:     string(kind),
		Symbol:   fields.Symbol,
		ImageURL: imageURL,
		Results:  results,
	})
}

// handleWebhookInfo answers the probes TradingView and uptime monitors
// send before the first real alert.
func (s *Server) handleWebhookInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"message":   "webhook online, POST alerts here",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// extractAlertText pulls the alert body out of the request. JSON bodies
// carry the text under message/text/content; anything else is taken verbatim.
func extractAlertText(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return trimmed
	}
	for _, key := range []string{"message", "text", "content"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return trimmed
}

// imageURLFor builds the trade-card link for progress alerts. Entry
// price falls back to the cached value recorded when the position
// opened, so breakeven alerts that omit it still get a correct card.
func (s *Server) imageURLFor(ctx context.Context, kind alert.EventKind, fields alert.Fields) string {
	var price *decimal.Decimal
	switch kind {
	case alert.KindBreakeven:
		price = fields.Breakeven
		if price == nil {
			price = fields.Trigger
		}
	case alert.KindTP1:
		price = fields.TP1
	case alert.KindTP2:
		price = fields.TP2
	default:
		// Only position-progress alerts carry a card
		return ""
	}
	if price == nil {
		price = fields.Latest
	}

	entry := fields.Entry
	if entry == nil && fields.Symbol != "" {
		if rec, ok := s.entries.Lookup(ctx, fields.Symbol); ok {
			entry = &rec.Entry
			log.Printf("💾 Entry price for %s resolved from cache: %s", fields.Symbol, rec.Entry)
		}
	}

	return card.BuildImageURL(s.cfg.Card.ImageBaseURL, card.Params{
		Symbol:    fields.Symbol,
		Direction: fields.ResolvedDirection(),
		Entry:     entry,
		Price:     price,
	})
}
