package models

import (
	"time"

	"gorm.io/gorm"
)

// JournalEntry は投稿済みの日記カードと付随スレッドの対応を保持する
type JournalEntry struct {
	MessageID string `gorm:"primaryKey"` // 日記カードのメッセージID
	ChannelID string `gorm:"index"`
	GuildID   string
	AuthorID  string // 編集・削除できるのはこのユーザーのみ
	ThreadID  string // 付随スレッド（作成に失敗した場合は空）
	EntryDate string // 対象タイムゾーンでの作成日 (YYYY-MM-DD)
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
