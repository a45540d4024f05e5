package services

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// AnnouncerSchedule 1 分ごとに Tick を呼ぶ cron 式
const AnnouncerSchedule = "* * * * *"

// Announcer は毎日 0 時 0 分に推薦リマインダーを投稿する
//
// 分単位の Tick で時刻を確認し、送信した日付を記録して同じ日に二度送らない。
// 0 時 0 分の Tick を逃した日は送信しない。
type Announcer struct {
	Platform  Platform
	DB        *gorm.DB
	ChannelID string
	Location  *time.Location
}

func NewAnnouncer(p Platform, db *gorm.DB, channelID string, loc *time.Location) *Announcer {
	return &Announcer{
		Platform:  p,
		DB:        db,
		ChannelID: channelID,
		Location:  loc,
	}
}

// Tick は now が対象タイムゾーンの 0 時 0 分ならリマインダーを送る
// 送信した場合は true を返す
func (a *Announcer) Tick(now time.Time) bool {
	local := now.In(a.Location)
	if local.Hour() != 0 || local.Minute() != 0 {
		return false
	}

	date := local.Format("2006-01-02")
	fired, err := MarkReminderFired(a.DB, date, a.ChannelID, now)
	if err != nil {
		log.Printf("reminder log error (date: %s): %v", date, err)
		return false
	}
	if !fired {
		log.Printf("reminder already sent for %s", date)
		return false
	}

	msg, err := a.Platform.SendMessage(a.ChannelID, reminderMessage())
	if err != nil {
		log.Printf("reminder send error (channel: %s): %v", a.ChannelID, err)
		if err := UnmarkReminder(a.DB, date); err != nil {
			log.Printf("reminder log rollback error (date: %s): %v", date, err)
		}
		return false
	}

	if err := SetReminderMessage(a.DB, date, msg.ID); err != nil {
		log.Printf("reminder log update error (date: %s): %v", date, err)
	}
	log.Printf("reminder sent (channel: %s, date: %s)", a.ChannelID, date)
	return true
}

func reminderMessage() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: "@here",
		Embeds: []*discordgo.MessageEmbed{NewEmbedBuilder().
			Title("일일 추천 알림").
			Description("@here /추천 한번씩 부탁드려요!!").
			Color(ColorBlue).
			Build()},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone},
		},
	}
}
