package services

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"discord-community-bot/config"
)

const (
	// ThreadArchiveMinutes スレッドの自動アーカイブ時間 (24 時間)
	ThreadArchiveMinutes = 1440
	// WarningTTL 警告メッセージを自動削除するまでの時間
	WarningTTL = 5 * time.Second

	maxThreadNameLength = 100
)

// Moderator はポリシーチャンネルへの投稿を判定し、スレッド作成か削除を行う
type Moderator struct {
	Platform  Platform
	Policies  *PolicyTable
	AfterFunc func(d time.Duration, f func())
}

func NewModerator(p Platform, policies *PolicyTable) *Moderator {
	return &Moderator{
		Platform: p,
		Policies: policies,
		AfterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// HandleMessage はポリシー対象チャンネルのメッセージなら判定と後処理を行う
// 対象外のチャンネルなら false を返す
func (m *Moderator) HandleMessage(msg *discordgo.Message, inThread bool) (bool, Verdict) {
	policy, ok := m.Policies.Lookup(msg.ChannelID)
	if !ok {
		return false, VerdictExempt
	}

	verdict := Classify(policy.Kind, msg, inThread)
	switch verdict {
	case VerdictApproved:
		if policy.Kind == config.PolicyUnrestricted && policy.ThreadName == "" {
			break
		}
		if _, err := m.SpawnThread(policy, msg); err != nil {
			log.Printf("thread spawn error (channel: %s, message: %s): %v", msg.ChannelID, msg.ID, err)
		}
	case VerdictViolation:
		m.Enforce(policy, msg)
	}
	return true, verdict
}

// SpawnThread は承認されたメッセージに議論用スレッドを作り、案内を投稿する
func (m *Moderator) SpawnThread(policy config.ChannelPolicy, msg *discordgo.Message) (*discordgo.Channel, error) {
	name := GetDisplayName(msg.Member, msg.Author)
	mention := ""
	if msg.Author != nil {
		mention = msg.Author.Mention()
	}

	threadName := truncateRunes(renderTemplate(policy.ThreadName, name, mention), maxThreadNameLength)
	thread, err := m.Platform.StartThread(msg.ChannelID, msg.ID, threadName, ThreadArchiveMinutes)
	if err != nil {
		return nil, err
	}

	if policy.ThreadPrompt != "" {
		prompt := renderTemplate(policy.ThreadPrompt, name, mention)
		if _, err := m.Platform.SendMessage(thread.ID, &discordgo.MessageSend{Content: prompt}); err != nil {
			log.Printf("thread prompt send error (thread: %s): %v", thread.ID, err)
		}
	}

	log.Printf("thread created: %s (channel: %s, message: %s)", threadName, msg.ChannelID, msg.ID)
	return thread, nil
}

// Enforce は違反メッセージを削除し、数秒で消える警告を投稿する
// 削除に失敗した場合は警告も出さずに諦める
func (m *Moderator) Enforce(policy config.ChannelPolicy, msg *discordgo.Message) {
	if err := m.Platform.DeleteMessage(msg.ChannelID, msg.ID); err != nil {
		log.Printf("violating message delete error (channel: %s, message: %s): %v", msg.ChannelID, msg.ID, err)
		return
	}

	mention := ""
	if msg.Author != nil {
		mention = msg.Author.Mention()
	}
	warning, err := m.Platform.SendMessage(msg.ChannelID, &discordgo.MessageSend{
		Content: renderTemplate(policy.Warning, GetDisplayName(msg.Member, msg.Author), mention),
	})
	if err != nil {
		log.Printf("warning send error (channel: %s): %v", msg.ChannelID, err)
		return
	}

	m.AfterFunc(WarningTTL, func() {
		if err := m.Platform.DeleteMessage(warning.ChannelID, warning.ID); err != nil && !IsNotFound(err) {
			log.Printf("warning delete error (channel: %s, message: %s): %v", warning.ChannelID, warning.ID, err)
		}
	})
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
