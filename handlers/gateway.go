package handlers

import (
	"github.com/bwmarrin/discordgo"

	"discord-community-bot/services"
)

// RegisterGateway は discordgo のイベントハンドラを Router に繋ぐ
func RegisterGateway(s *discordgo.Session, r *Router) {
	s.AddHandler(func(s *discordgo.Session, e *discordgo.Ready) {
		r.HandleReady()
	})

	s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		r.HandleMessage(m.Message, isThread(s, m.ChannelID))
	})

	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.HandleInteraction(i.Interaction, services.GatewayResponder(s, i.Interaction))
	})
}

// isThread はステートキャッシュからチャンネルがスレッドかを判定する
// キャッシュに無いチャンネルはスレッドではないとみなす
func isThread(s *discordgo.Session, channelID string) bool {
	if s.State == nil {
		return false
	}
	ch, err := s.State.Channel(channelID)
	if err != nil {
		return false
	}
	return ch.IsThread()
}
