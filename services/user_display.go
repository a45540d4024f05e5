package services

import "github.com/bwmarrin/discordgo"

// GetDisplayName はサーバー上で表示される名前を取得する
// ニックネーム、グローバル表示名、ユーザー名の順に優先する
func GetDisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}

	if user == nil && member != nil {
		user = member.User
	}
	if user == nil {
		return ""
	}

	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// interactionUser はインタラクションを実行したユーザーを返す
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
