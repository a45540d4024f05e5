package models

import "time"

// ReminderLog は日次リマインダーを送信した日付を記録する
type ReminderLog struct {
	Date      string `gorm:"primaryKey"` // 対象タイムゾーンでの日付 (YYYY-MM-DD)
	ChannelID string
	MessageID string
	FiredAt   time.Time
}
