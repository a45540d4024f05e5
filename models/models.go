package models

// All は AutoMigrate の対象となるモデル
func All() []interface{} {
	return []interface{}{
		&JournalEntry{},
		&ComposePrompt{},
		&ReminderLog{},
	}
}
