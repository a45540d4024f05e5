package services

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestEmbedBuilder_Chaining(t *testing.T) {
	builder := NewEmbedBuilder()
	result := builder.Title("title")

	// チェーン可能性の確認
	if result != builder {
		t.Error("Title should return builder for chaining")
	}

	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	embed := builder.
		Description("body").
		Color(ColorBlue).
		Field("name", "value", true).
		Footer("footer").
		Timestamp(now).
		Build()

	if embed.Title != "title" || embed.Description != "body" {
		t.Errorf("unexpected title/description: %+v", embed)
	}
	if embed.Color != ColorBlue {
		t.Errorf("expected color %x, got %x", ColorBlue, embed.Color)
	}
	if len(embed.Fields) != 1 || !embed.Fields[0].Inline {
		t.Errorf("expected one inline field, got %+v", embed.Fields)
	}
	if embed.Footer == nil || embed.Footer.Text != "footer" {
		t.Errorf("unexpected footer: %+v", embed.Footer)
	}
	if embed.Timestamp != "2026-10-19T09:30:00Z" {
		t.Errorf("unexpected timestamp: %s", embed.Timestamp)
	}
}

func TestButtonRows(t *testing.T) {
	buttons := make([]discordgo.Button, 0)
	for i := 0; i < 7; i++ {
		buttons = append(buttons, CreateButton("b", "", "id", discordgo.PrimaryButton))
	}

	rows := ButtonRows(buttons...)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if n := len(rows[0].(discordgo.ActionsRow).Components); n != 5 {
		t.Errorf("expected 5 buttons in first row, got %d", n)
	}
	if n := len(rows[1].(discordgo.ActionsRow).Components); n != 2 {
		t.Errorf("expected 2 buttons in second row, got %d", n)
	}

	if rows := ButtonRows(); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestCreateButton_Emoji(t *testing.T) {
	withEmoji := CreateButton("label", "🎮", "role:1", discordgo.SuccessButton)
	if withEmoji.Emoji == nil || withEmoji.Emoji.Name != "🎮" {
		t.Errorf("expected emoji to be set, got %+v", withEmoji.Emoji)
	}

	withoutEmoji := CreateButton("label", "", "role:1", discordgo.SuccessButton)
	if withoutEmoji.Emoji != nil {
		t.Errorf("expected no emoji, got %+v", withoutEmoji.Emoji)
	}
}

func TestButtonStyle(t *testing.T) {
	tests := map[string]discordgo.ButtonStyle{
		"primary":   discordgo.PrimaryButton,
		"success":   discordgo.SuccessButton,
		"danger":    discordgo.DangerButton,
		"secondary": discordgo.SecondaryButton,
		"":          discordgo.PrimaryButton,
	}
	for name, expected := range tests {
		if got := ButtonStyle(name); got != expected {
			t.Errorf("ButtonStyle(%q) = %v, want %v", name, got, expected)
		}
	}
}

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "journal:submit",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "journal:content", Value: "오늘은 좋았다"},
			}},
		},
	}

	if got := ModalValue(data, "journal:content"); got != "오늘은 좋았다" {
		t.Errorf("unexpected value: %q", got)
	}
	if got := ModalValue(data, "missing"); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestHasButton(t *testing.T) {
	msg := &discordgo.Message{
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.Button{CustomID: "journal:compose"},
			}},
		},
	}

	if !hasButton(msg, "journal:compose") {
		t.Error("expected compose button to be found")
	}
	if hasButton(msg, "journal:edit:U1") {
		t.Error("unexpected button match")
	}
	if hasButton(&discordgo.Message{}, "journal:compose") {
		t.Error("message without components should not match")
	}
}
