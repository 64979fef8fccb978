package database

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"tv-alert-relay/alert"
	"tv-alert-relay/notifications"
)

// AlertRepository handles database operations for alerts and deliveries
type AlertRepository struct {
	db *Database
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *Database) *AlertRepository {
	return &AlertRepository{db: db}
}

// InitSchema performs auto-migration
func (r *AlertRepository) InitSchema() error {
	log.Println("🔄 Starting database schema initialization...")

	if err := r.db.db.AutoMigrate(&AlertRecord{}, &DeliveryLog{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	log.Println("✅ Database schema initialized")
	return nil
}

// SaveAlert stores a processed alert and returns its record ID.
func (r *AlertRepository) SaveAlert(kind alert.EventKind, fields alert.Fields, rawText, composed, imageURL string, skipped bool) (uint, error) {
	record := AlertRecord{
		ReceivedAt: time.Now(),
		Kind:       string(kind),
		Symbol:     fields.Symbol,
		Direction:  fields.ResolvedDirection().Display(),
		RawText:    rawText,
		Composed:   composed,
		ImageURL:   imageURL,
		Skipped:    skipped,
	}
	if err := r.db.db.Create(&record).Error; err != nil {
		return 0, fmt.Errorf("failed to save alert: %w", err)
	}
	return record.ID, nil
}

// SaveDeliveries stores the per-channel results for an alert.
func (r *AlertRepository) SaveDeliveries(alertID uint, results map[string]notifications.Result) error {
	if len(results) == 0 {
		return nil
	}

	logs := make([]DeliveryLog, 0, len(results))
	for channel, res := range results {
		logs = append(logs, DeliveryLog{
			AlertID:    alertID,
			Channel:    channel,
			Success:    res.Success,
			Skipped:    res.Skipped,
			Error:      res.Error,
			DurationMs: res.DurationMs,
		})
	}
	if err := r.db.db.Create(&logs).Error; err != nil {
		return fmt.Errorf("failed to save delivery logs: %w", err)
	}
	return nil
}

// RecentAlerts returns the most recent alerts, newest first.
func (r *AlertRepository) RecentAlerts(limit int) ([]AlertRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var records []AlertRecord
	err := r.db.db.
		Order("received_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	return records, nil
}

// RecentDeliveries returns the most recent delivery attempts, newest first.
func (r *AlertRepository) RecentDeliveries(limit int) ([]DeliveryLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []DeliveryLog
	err := r.db.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery logs: %w", err)
	}
	return logs, nil
}
