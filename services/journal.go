package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"discord-community-bot/models"
)

// 日記機能で使う custom_id
const (
	JournalComposeID    = "journal:compose"
	JournalSubmitID     = "journal:submit"
	JournalContentID    = "journal:content"
	JournalEditPrefix   = "journal:edit:"
	JournalDeletePrefix = "journal:delete:"
	JournalUpdatePrefix = "journal:update:"
)

const (
	// MaxJournalLength 日記本文の最大文字数
	MaxJournalLength = 2000
	// promptScanLimit 以前の compose メッセージを探す直近メッセージ数
	promptScanLimit = 10
)

// Journal は日記の作成・編集・削除と compose メッセージを管理する
//
// 編集・削除ボタンの custom_id に作成者のユーザーID を埋め込むため、
// プロセスを再起動しても作成者チェックができる。
type Journal struct {
	Platform Platform
	DB       *gorm.DB
	Location *time.Location
	Now      func() time.Time
}

func NewJournal(p Platform, db *gorm.DB, loc *time.Location) *Journal {
	return &Journal{
		Platform: p,
		DB:       db,
		Location: loc,
		Now:      time.Now,
	}
}

// OpenCompose は日記入力モーダルを開く
func (j *Journal) OpenCompose(i *discordgo.Interaction, r Responder) {
	respond(r, TextInputModal(JournalSubmitID, "오늘의 일기", discordgo.TextInput{
		CustomID:    JournalContentID,
		Label:       "오늘의 일기를 작성해주세요",
		Style:       discordgo.TextInputParagraph,
		Placeholder: "오늘 하루는 어떠셨나요?",
		Required:    true,
		MaxLength:   MaxJournalLength,
	}))
}

// Submit は入力された日記をカードとして投稿し、スレッドと compose メッセージを用意する
func (j *Journal) Submit(i *discordgo.Interaction, r Responder) {
	user := interactionUser(i)
	if user == nil {
		respond(r, EphemeralMessage("❌ 서버에서만 사용할 수 있습니다."))
		return
	}

	content := ModalValue(i.ModalSubmitData(), JournalContentID)
	if strings.TrimSpace(content) == "" {
		respond(r, EphemeralMessage("❌ 일기 내용을 입력해주세요."))
		return
	}
	if len([]rune(content)) > MaxJournalLength {
		respond(r, EphemeralMessage(fmt.Sprintf("❌ 일기는 %d자까지 작성할 수 있습니다.", MaxJournalLength)))
		return
	}

	respond(r, EphemeralMessage("일기가 작성되었습니다!"))

	if _, err := j.PostEntry(i.ChannelID, i.GuildID, i.Member, user, content); err != nil {
		reportIncident("journal post", err)
		return
	}

	if err := j.RefreshPrompt(i.ChannelID); err != nil {
		reportIncident("journal prompt refresh", err)
	}
}

// PostEntry は日記カードを投稿し、日付入りの付随スレッドを作る
func (j *Journal) PostEntry(channelID, guildID string, member *discordgo.Member, user *discordgo.User, content string) (*models.JournalEntry, error) {
	now := j.Now().In(j.Location)
	dateLabel := now.Format("2006년 01월 02일")

	embed := NewEmbedBuilder().
		Title(fmt.Sprintf("📖 %s님의 일기", GetDisplayName(member, user))).
		Description(content).
		Color(ColorBlue).
		Timestamp(now).
		Field("작성일", dateLabel, false).
		Footer(fmt.Sprintf("작성자: %s", user.Username)).
		Build()

	card, err := j.Platform.SendMessage(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: ButtonRows(
			CreateButton("수정하기", "✏️", JournalEditPrefix+user.ID, discordgo.PrimaryButton),
			CreateButton("삭제하기", "🗑️", JournalDeletePrefix+user.ID, discordgo.DangerButton),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send journal card: %w", err)
	}

	entry := &models.JournalEntry{
		MessageID: card.ID,
		ChannelID: channelID,
		GuildID:   guildID,
		AuthorID:  user.ID,
		EntryDate: now.Format("2006-01-02"),
	}

	thread, err := j.Platform.StartThread(channelID, card.ID, fmt.Sprintf("💭 %s의 이야기", dateLabel), ThreadArchiveMinutes)
	if err != nil {
		log.Printf("journal thread start error (message: %s): %v", card.ID, err)
	} else {
		entry.ThreadID = thread.ID
		invite := fmt.Sprintf("%s님의 하루에 대해 이야기를 나눠보세요!", user.Mention())
		if _, err := j.Platform.SendMessage(thread.ID, &discordgo.MessageSend{Content: invite}); err != nil {
			log.Printf("journal thread invite send error (thread: %s): %v", thread.ID, err)
		}
	}

	if err := SaveJournalEntry(j.DB, entry); err != nil {
		log.Printf("journal entry index error (message: %s): %v", card.ID, err)
	}

	log.Printf("journal entry posted (channel: %s, message: %s, author: %s)", channelID, card.ID, user.ID)
	return entry, nil
}

// RefreshPrompt は以前の compose メッセージを消し、新しいものを末尾に投稿する
func (j *Journal) RefreshPrompt(channelID string) error {
	if !j.deleteIndexedPrompt(channelID) {
		j.deleteScannedPrompt(channelID)
	}

	prompt, err := j.Platform.SendMessage(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{NewEmbedBuilder().
			Title("✨ 일기장").
			Description("아래 버튼을 눌러 오늘의 일기를 작성해보세요!").
			Color(ColorBlue).
			Build()},
		Components: ButtonRows(CreateButton("일기 쓰기", "📝", JournalComposeID, discordgo.PrimaryButton)),
	})
	if err != nil {
		return fmt.Errorf("failed to send compose prompt: %w", err)
	}

	if err := SaveComposePrompt(j.DB, channelID, prompt.ID); err != nil {
		log.Printf("compose prompt index error (channel: %s): %v", channelID, err)
	}
	return nil
}

func (j *Journal) deleteIndexedPrompt(channelID string) bool {
	messageID, ok := GetComposePrompt(j.DB, channelID)
	if !ok {
		return false
	}
	if err := j.Platform.DeleteMessage(channelID, messageID); err != nil {
		if !IsNotFound(err) {
			log.Printf("compose prompt delete error (channel: %s, message: %s): %v", channelID, messageID, err)
		}
		return false
	}
	return true
}

func (j *Journal) deleteScannedPrompt(channelID string) {
	recent, err := j.Platform.RecentMessages(channelID, promptScanLimit)
	if err != nil {
		log.Printf("journal channel history error (channel: %s): %v", channelID, err)
		return
	}

	botID := j.Platform.BotUserID()
	for _, msg := range recent {
		if msg.Author == nil || msg.Author.ID != botID || !hasButton(msg, JournalComposeID) {
			continue
		}
		if err := j.Platform.DeleteMessage(channelID, msg.ID); err != nil {
			log.Printf("compose prompt delete error (channel: %s, message: %s): %v", channelID, msg.ID, err)
		}
		return
	}
}

// checkOwner は操作したユーザーが日記の作成者かを確認し、違えば拒否を応答する
func (j *Journal) checkOwner(i *discordgo.Interaction, customID, prefix string, r Responder) bool {
	user := interactionUser(i)
	ownerID := strings.TrimPrefix(customID, prefix)
	if ownerID == "" && i.Message != nil {
		if entry, err := GetJournalEntry(j.DB, i.Message.ID); err == nil {
			ownerID = entry.AuthorID
		}
	}

	if user == nil || ownerID == "" || user.ID != ownerID {
		respond(r, EphemeralMessage("자신의 일기만 수정/삭제할 수 있습니다!"))
		return false
	}
	return true
}

// OpenEdit は現在の本文を入れた編集モーダルを開く
func (j *Journal) OpenEdit(i *discordgo.Interaction, r Responder) {
	customID := i.MessageComponentData().CustomID
	if !j.checkOwner(i, customID, JournalEditPrefix, r) {
		return
	}

	if i.Message == nil || len(i.Message.Embeds) == 0 {
		code := reportIncident("journal edit modal", fmt.Errorf("journal card has no embed"))
		respond(r, EphemeralMessage(fmt.Sprintf("모달 열기 중 오류가 발생했습니다. (오류 코드: %s)", code)))
		return
	}

	ownerID := strings.TrimPrefix(customID, JournalEditPrefix)
	respond(r, TextInputModal(JournalUpdatePrefix+ownerID, "일기 수정하기", discordgo.TextInput{
		CustomID:  JournalContentID,
		Label:     "일기 내용",
		Style:     discordgo.TextInputParagraph,
		Value:     i.Message.Embeds[0].Description,
		Required:  true,
		MaxLength: MaxJournalLength,
	}))
}

// SubmitEdit は日記カードの本文だけを置き換える
func (j *Journal) SubmitEdit(i *discordgo.Interaction, r Responder) {
	data := i.ModalSubmitData()
	if !j.checkOwner(i, data.CustomID, JournalUpdatePrefix, r) {
		return
	}

	content := ModalValue(data, JournalContentID)
	if strings.TrimSpace(content) == "" || len([]rune(content)) > MaxJournalLength {
		respond(r, EphemeralMessage(fmt.Sprintf("❌ 일기는 1~%d자로 작성해주세요.", MaxJournalLength)))
		return
	}

	if i.Message == nil || len(i.Message.Embeds) == 0 {
		code := reportIncident("journal edit", fmt.Errorf("journal card is not attached to modal submit"))
		respond(r, EphemeralMessage(fmt.Sprintf("일기 수정 중 오류가 발생했습니다. (오류 코드: %s)", code)))
		return
	}

	embeds := make([]*discordgo.MessageEmbed, len(i.Message.Embeds))
	copy(embeds, i.Message.Embeds)
	edited := *embeds[0]
	edited.Description = content
	embeds[0] = &edited

	if err := j.Platform.EditMessageEmbeds(i.ChannelID, i.Message.ID, embeds); err != nil {
		j.respondError(r, "journal edit", "일기 수정 중 오류가 발생했습니다.", err)
		return
	}

	log.Printf("journal entry edited (channel: %s, message: %s)", i.ChannelID, i.Message.ID)
	respond(r, EphemeralMessage("✨ 일기가 수정되었습니다!"))
}

// Delete は付随スレッドを消してから日記カードを消す
func (j *Journal) Delete(i *discordgo.Interaction, r Responder) {
	if !j.checkOwner(i, i.MessageComponentData().CustomID, JournalDeletePrefix, r) {
		return
	}
	if i.Message == nil {
		respond(r, EphemeralMessage("❌ 일기를 찾을 수 없습니다."))
		return
	}

	if threadID := j.findThread(i.GuildID, i.ChannelID, i.Message.ID); threadID != "" {
		if err := j.Platform.DeleteChannel(threadID); err != nil && !IsNotFound(err) {
			log.Printf("journal thread delete error (thread: %s): %v", threadID, err)
		}
	}

	if err := j.Platform.DeleteMessage(i.ChannelID, i.Message.ID); err != nil && !IsNotFound(err) {
		j.respondError(r, "journal delete", "일기 삭제 중 오류가 발생했습니다.", err)
		return
	}

	if err := DeleteJournalEntry(j.DB, i.Message.ID); err != nil {
		log.Printf("journal entry index delete error (message: %s): %v", i.Message.ID, err)
	}

	log.Printf("journal entry deleted (channel: %s, message: %s)", i.ChannelID, i.Message.ID)
	respond(r, EphemeralMessage("일기가 삭제되었습니다!"))
}

// findThread は索引、無ければアクティブなスレッド一覧から日記カードのスレッドを探す
// メッセージから作られたスレッドの ID は元メッセージの ID と同じになる
func (j *Journal) findThread(guildID, channelID, messageID string) string {
	if entry, err := GetJournalEntry(j.DB, messageID); err == nil && entry.ThreadID != "" {
		return entry.ThreadID
	} else if err != nil && !isRecordNotFound(err) {
		log.Printf("journal entry lookup error (message: %s): %v", messageID, err)
	}

	threads, err := j.Platform.ActiveThreads(guildID)
	if err != nil {
		log.Printf("active threads fetch error (guild: %s): %v", guildID, err)
		return ""
	}
	for _, thread := range threads {
		if thread.ID == messageID && thread.ParentID == channelID {
			return thread.ID
		}
	}
	return ""
}

func (j *Journal) respondError(r Responder, op, message string, err error) {
	if IsPermissionDenied(err) {
		log.Printf("%s error: %v", op, err)
		respond(r, EphemeralMessage("❌ 봇의 권한이 부족합니다."))
		return
	}
	code := reportIncident(op, err)
	respond(r, EphemeralMessage(fmt.Sprintf("%s (오류 코드: %s)", message, code)))
}
