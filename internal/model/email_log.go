package model

import "time"

// EmailLog records one notification sent through the mail gateway. Rows are
// written only after a successful send and are joined into the service
// dashboard view.
type EmailLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Recipient  string    `json:"recipient" gorm:"type:varchar(100);not null"`
	Department string    `json:"department" gorm:"type:varchar(100)"`
	Message    string    `json:"message" gorm:"type:text"`
	SentAt     time.Time `json:"sent_at"`
}
