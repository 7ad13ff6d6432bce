package models

import "time"

// LearnerSettings holds the per-learner plan configuration
type LearnerSettings struct {
	LearnerID        int64     `json:"learner_id"`
	ChatID           int64     `json:"chat_id"` // Telegram chat for reminders, 0 if none
	PlanStart        time.Time `json:"plan_start"`
	Quota            Quota     `json:"quota"`
	NotificationHour int       `json:"notification_hour"` // Hour of day for reminders (0-23)
	Active           bool      `json:"active"`
}
