package services

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordPlatform は discordgo のセッションを使って Platform を実装する
type DiscordPlatform struct {
	Session *discordgo.Session
}

func NewDiscordPlatform(s *discordgo.Session) *DiscordPlatform {
	return &DiscordPlatform{Session: s}
}

func (d *DiscordPlatform) BotUserID() string {
	if d.Session.State == nil || d.Session.State.User == nil {
		return ""
	}
	return d.Session.State.User.ID
}

func (d *DiscordPlatform) SetPresence(name string) error {
	return d.Session.UpdateGameStatus(0, name)
}

func (d *DiscordPlatform) SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	return d.Session.ChannelMessageSendComplex(channelID, msg)
}

func (d *DiscordPlatform) Message(channelID, messageID string) (*discordgo.Message, error) {
	return d.Session.ChannelMessage(channelID, messageID)
}

func (d *DiscordPlatform) EditMessageEmbeds(channelID, messageID string, embeds []*discordgo.MessageEmbed) error {
	_, err := d.Session.ChannelMessageEditComplex(discordgo.NewMessageEdit(channelID, messageID).SetEmbeds(embeds))
	return err
}

func (d *DiscordPlatform) DeleteMessage(channelID, messageID string) error {
	return d.Session.ChannelMessageDelete(channelID, messageID)
}

func (d *DiscordPlatform) RecentMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	return d.Session.ChannelMessages(channelID, limit, "", "", "")
}

func (d *DiscordPlatform) StartThread(channelID, messageID, name string, archiveMinutes int) (*discordgo.Channel, error) {
	return d.Session.MessageThreadStart(channelID, messageID, name, archiveMinutes)
}

func (d *DiscordPlatform) ActiveThreads(guildID string) ([]*discordgo.Channel, error) {
	list, err := d.Session.GuildThreadsActive(guildID)
	if err != nil {
		return nil, err
	}
	return list.Threads, nil
}

func (d *DiscordPlatform) DeleteChannel(channelID string) error {
	_, err := d.Session.ChannelDelete(channelID)
	return err
}

// Role はステートキャッシュを優先し、無ければ REST でギルドのロール一覧を引く
func (d *DiscordPlatform) Role(guildID, roleID string) (*discordgo.Role, error) {
	if d.Session.State != nil {
		if role, err := d.Session.State.Role(guildID, roleID); err == nil {
			return role, nil
		}
	}

	roles, err := d.Session.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role, nil
		}
	}
	return nil, fmt.Errorf("role %s: %w", roleID, ErrNotFound)
}

func (d *DiscordPlatform) AddRole(guildID, userID, roleID string) error {
	return d.Session.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (d *DiscordPlatform) RemoveRole(guildID, userID, roleID string) error {
	return d.Session.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (d *DiscordPlatform) SetNickname(guildID, userID, nickname string) error {
	return d.Session.GuildMemberNickname(guildID, userID, nickname)
}

// GatewayResponder は Gateway で受け取ったインタラクションにコールバック API で応答する
func GatewayResponder(s *discordgo.Session, i *discordgo.Interaction) Responder {
	return ResponderFunc(func(resp *discordgo.InteractionResponse) error {
		return s.InteractionRespond(i, resp)
	})
}
