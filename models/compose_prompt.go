package models

import "time"

// ComposePrompt はチャンネルごとに一つだけ存在する「日記を書く」メッセージ
type ComposePrompt struct {
	ChannelID string `gorm:"primaryKey"`
	MessageID string
	UpdatedAt time.Time
}
