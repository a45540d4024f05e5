package services

import "github.com/bwmarrin/discordgo"

// Platform はボットが Discord に対して行う操作の集合
//
// 各ハンドラはグローバルなセッションではなくこのインターフェースを受け取る。
// 本番では DiscordPlatform、テストでは testutil.FakePlatform を使う。
type Platform interface {
	BotUserID() string
	SetPresence(name string) error

	SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
	Message(channelID, messageID string) (*discordgo.Message, error)
	EditMessageEmbeds(channelID, messageID string, embeds []*discordgo.MessageEmbed) error
	DeleteMessage(channelID, messageID string) error
	// RecentMessages は新しい順に最大 limit 件のメッセージを返す
	RecentMessages(channelID string, limit int) ([]*discordgo.Message, error)

	StartThread(channelID, messageID, name string, archiveMinutes int) (*discordgo.Channel, error)
	ActiveThreads(guildID string) ([]*discordgo.Channel, error)
	DeleteChannel(channelID string) error

	Role(guildID, roleID string) (*discordgo.Role, error)
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	SetNickname(guildID, userID, nickname string) error
}

// Responder はインタラクションへの最初の応答を返す
//
// Gateway 経由ではコールバック API、HTTP エンドポイント経由では
// レスポンスボディとして応答が送られる。
type Responder interface {
	Respond(resp *discordgo.InteractionResponse) error
}

// ResponderFunc は関数を Responder として扱うためのアダプタ
type ResponderFunc func(resp *discordgo.InteractionResponse) error

func (f ResponderFunc) Respond(resp *discordgo.InteractionResponse) error {
	return f(resp)
}
