package database

import "time"

// AlertRecord is one processed inbound alert.
type AlertRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReceivedAt time.Time `gorm:"index;not null" json:"received_at"`
	Kind       string    `gorm:"type:varchar(20);index;not null" json:"kind"`
	Symbol     string    `gorm:"type:varchar(30);index" json:"symbol"`
	Direction  string    `gorm:"type:varchar(10)" json:"direction"`
	RawText    string    `gorm:"type:text" json:"raw_text"`
	Composed   string    `gorm:"type:text" json:"composed"`
	ImageURL   string    `gorm:"type:text" json:"image_url"`
	Skipped    bool      `json:"skipped"`
}

// TableName overrides the default GORM table name
func (AlertRecord) TableName() string {
	return "alerts"
}

// DeliveryLog is the outcome of one channel delivery attempt for an alert.
type DeliveryLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AlertID   uint      `gorm:"index;not null" json:"alert_id"`
	Channel   string    `gorm:"type:varchar(20);index;not null" json:"channel"`
	Success    bool      `json:"success"`
	Skipped    bool      `json:"skipped"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the default GORM table name
func (DeliveryLog) TableName() string {
	return "delivery_logs"
}
