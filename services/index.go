package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"discord-community-bot/models"
)

// 日記カードと付随スレッド、チャンネルごとの「日記を書く」メッセージ、
// リマインダー送信日をプロセス内で索引する。索引に無い場合は呼び出し側が
// チャンネル履歴の走査にフォールバックする。

// GetComposePrompt はチャンネルの現在の compose メッセージID を返す
func GetComposePrompt(db *gorm.DB, channelID string) (string, bool) {
	var prompt models.ComposePrompt
	if err := db.Where("channel_id = ?", channelID).First(&prompt).Error; err != nil {
		return "", false
	}
	return prompt.MessageID, prompt.MessageID != ""
}

func SaveComposePrompt(db *gorm.DB, channelID, messageID string) error {
	return db.Save(&models.ComposePrompt{
		ChannelID: channelID,
		MessageID: messageID,
		UpdatedAt: time.Now(),
	}).Error
}

func SaveJournalEntry(db *gorm.DB, entry *models.JournalEntry) error {
	return db.Create(entry).Error
}

func GetJournalEntry(db *gorm.DB, messageID string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := db.Where("message_id = ?", messageID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func DeleteJournalEntry(db *gorm.DB, messageID string) error {
	return db.Where("message_id = ?", messageID).Delete(&models.JournalEntry{}).Error
}

// MarkReminderFired は date のリマインダーを記録する
// すでに記録済みなら false を返す
func MarkReminderFired(db *gorm.DB, date, channelID string, firedAt time.Time) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.ReminderLog{
		Date:      date,
		ChannelID: channelID,
		FiredAt:   firedAt,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UnmarkReminder は送信に失敗した日の記録を取り消す
func UnmarkReminder(db *gorm.DB, date string) error {
	return db.Where("date = ?", date).Delete(&models.ReminderLog{}).Error
}

func SetReminderMessage(db *gorm.DB, date, messageID string) error {
	return db.Model(&models.ReminderLog{}).Where("date = ?", date).Update("message_id", messageID).Error
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
