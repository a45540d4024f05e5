package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// NicknameCommand は「!닉 <새 닉네임>」でニックネームを変更する
type NicknameCommand struct {
	Platform Platform
	Prefix   string
}

func NewNicknameCommand(p Platform, prefix string) *NicknameCommand {
	return &NicknameCommand{Platform: p, Prefix: prefix}
}

// Handle はコマンドであれば処理して true を返す
func (n *NicknameCommand) Handle(msg *discordgo.Message) bool {
	if msg.Author == nil || !strings.HasPrefix(msg.Content, n.Prefix) {
		return false
	}

	newNick := strings.TrimSpace(strings.TrimPrefix(msg.Content, n.Prefix))
	if newNick == "" {
		n.send(msg.ChannelID, NewEmbedBuilder().
			Title("❌ 닉네임 변경 실패").
			Description(fmt.Sprintf("새로운 닉네임을 입력해주세요.\n사용법: `%s [새로운 닉네임]`", n.Prefix)).
			Color(ColorRed).
			Footer("올바른 형식으로 다시 시도해주세요.").
			Build())
		return true
	}

	oldNick := GetDisplayName(msg.Member, msg.Author)
	if err := n.Platform.SetNickname(msg.GuildID, msg.Author.ID, newNick); err != nil {
		n.send(msg.ChannelID, nicknameErrorEmbed(err))
		return true
	}

	log.Printf("nickname changed (user: %s): %s -> %s", msg.Author.ID, oldNick, newNick)
	n.send(msg.ChannelID, NewEmbedBuilder().
		Title("✅ 닉네임 변경 완료").
		Color(ColorGreen).
		Field("이전 닉네임", fmt.Sprintf("```%s```", oldNick), true).
		Field("현재 닉네임", fmt.Sprintf("```%s```", newNick), true).
		Footer(fmt.Sprintf("요청자: %s", msg.Author.Username)).
		Build())
	return true
}

func nicknameErrorEmbed(err error) *discordgo.MessageEmbed {
	if IsPermissionDenied(err) {
		log.Printf("nickname change error: %v", err)
		return NewEmbedBuilder().
			Title("❌ 닉네임 변경 실패").
			Description("봇의 권한이 부족합니다.").
			Color(ColorRed).
			Footer("서버 관리자에게 문의해주세요.").
			Build()
	}

	code := reportIncident("nickname change", err)
	return NewEmbedBuilder().
		Title("❌ 닉네임 변경 실패").
		Description("오류가 발생했습니다.").
		Color(ColorRed).
		Footer(fmt.Sprintf("잠시 후 다시 시도해주세요. (오류 코드: %s)", code)).
		Build()
}

func (n *NicknameCommand) send(channelID string, embed *discordgo.MessageEmbed) {
	if _, err := n.Platform.SendMessage(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Printf("nickname reply send error (channel: %s): %v", channelID, err)
	}
}
