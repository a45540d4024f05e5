package services

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// 埋め込みの色
const (
	ColorBlue     = 0x3498db
	ColorRed      = 0xe74c3c
	ColorGreen    = 0x2ecc71
	ColorPink     = 0xffb6c1
	ColorSkyBlue  = 0x87ceeb
	ColorLavender = 0xe6e6fa
	ColorRose     = 0xffc0cb
)

// 1 行に並べられるボタンの最大数
const maxButtonsPerRow = 5

// EmbedBuilder 埋め込みメッセージ構築のヘルパー
type EmbedBuilder struct {
	embed *discordgo.MessageEmbed
}

func NewEmbedBuilder() *EmbedBuilder {
	return &EmbedBuilder{embed: &discordgo.MessageEmbed{}}
}

func (b *EmbedBuilder) Title(title string) *EmbedBuilder {
	b.embed.Title = title
	return b
}

func (b *EmbedBuilder) Description(description string) *EmbedBuilder {
	b.embed.Description = description
	return b
}

func (b *EmbedBuilder) Color(color int) *EmbedBuilder {
	b.embed.Color = color
	return b
}

func (b *EmbedBuilder) Field(name, value string, inline bool) *EmbedBuilder {
	b.embed.Fields = append(b.embed.Fields, &discordgo.MessageEmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
	return b
}

func (b *EmbedBuilder) Footer(text string) *EmbedBuilder {
	b.embed.Footer = &discordgo.MessageEmbedFooter{Text: text}
	return b
}

func (b *EmbedBuilder) Timestamp(t time.Time) *EmbedBuilder {
	b.embed.Timestamp = t.Format(time.RFC3339)
	return b
}

func (b *EmbedBuilder) Build() *discordgo.MessageEmbed {
	return b.embed
}

// CreateButton ボタン要素を作成
func CreateButton(label, emoji, customID string, style discordgo.ButtonStyle) discordgo.Button {
	button := discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: customID,
	}
	if emoji != "" {
		button.Emoji = &discordgo.ComponentEmoji{Name: emoji}
	}
	return button
}

// ButtonRows ボタンを 5 個ずつの行に分ける
func ButtonRows(buttons ...discordgo.Button) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, (len(buttons)+maxButtonsPerRow-1)/maxButtonsPerRow)
	for start := 0; start < len(buttons); start += maxButtonsPerRow {
		end := start + maxButtonsPerRow
		if end > len(buttons) {
			end = len(buttons)
		}
		row := discordgo.ActionsRow{}
		for _, button := range buttons[start:end] {
			row.Components = append(row.Components, button)
		}
		rows = append(rows, row)
	}
	return rows
}

// ButtonStyle 設定ファイルのスタイル名を変換する
func ButtonStyle(name string) discordgo.ButtonStyle {
	switch name {
	case "success":
		return discordgo.SuccessButton
	case "danger":
		return discordgo.DangerButton
	case "secondary":
		return discordgo.SecondaryButton
	default:
		return discordgo.PrimaryButton
	}
}

// EphemeralMessage 実行したユーザーにだけ見える応答
func EphemeralMessage(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// TextInputModal 複数行テキスト入力を一つ持つモーダル
func TextInputModal(customID, title string, input discordgo.TextInput) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customID,
			Title:    title,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{input}},
			},
		},
	}
}

// ModalValue モーダル送信データから指定の入力値を取り出す
func ModalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, component := range data.Components {
		var children []discordgo.MessageComponent
		switch row := component.(type) {
		case *discordgo.ActionsRow:
			children = row.Components
		case discordgo.ActionsRow:
			children = row.Components
		}
		for _, child := range children {
			switch input := child.(type) {
			case *discordgo.TextInput:
				if input.CustomID == customID {
					return input.Value
				}
			case discordgo.TextInput:
				if input.CustomID == customID {
					return input.Value
				}
			}
		}
	}
	return ""
}

// hasButton メッセージに指定 custom_id のボタンが含まれるか
func hasButton(msg *discordgo.Message, customID string) bool {
	for _, component := range msg.Components {
		var children []discordgo.MessageComponent
		switch row := component.(type) {
		case *discordgo.ActionsRow:
			children = row.Components
		case discordgo.ActionsRow:
			children = row.Components
		}
		for _, child := range children {
			switch button := child.(type) {
			case *discordgo.Button:
				if button.CustomID == customID {
					return true
				}
			case discordgo.Button:
				if button.CustomID == customID {
					return true
				}
			}
		}
	}
	return false
}
