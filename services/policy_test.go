package services

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"discord-community-bot/config"
)

func TestClassify_LinkOnly(t *testing.T) {
	tests := []struct {
		content  string
		expected Verdict
	}{
		{"https://example.com", VerdictApproved},
		{"check this http://example.com out", VerdictApproved},
		{"www.example.com", VerdictApproved},
		{"just chatting", VerdictViolation},
		{"", VerdictViolation},
		{"example.com", VerdictViolation},
		{"HTTPS://EXAMPLE.COM", VerdictViolation},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			msg := &discordgo.Message{Content: tt.content}
			assert.Equal(t, tt.expected, Classify(config.PolicyLinkOnly, msg, false))
		})
	}
}

func TestClassify_ImageOnly(t *testing.T) {
	tests := []struct {
		name        string
		attachments []*discordgo.MessageAttachment
		expected    Verdict
	}{
		{"no attachments", nil, VerdictViolation},
		{"png", []*discordgo.MessageAttachment{{ContentType: "image/png"}}, VerdictApproved},
		{"video only", []*discordgo.MessageAttachment{{ContentType: "video/mp4"}}, VerdictViolation},
		{"unknown content type", []*discordgo.MessageAttachment{{ContentType: ""}}, VerdictViolation},
		{"mixed", []*discordgo.MessageAttachment{{ContentType: "text/plain"}, {ContentType: "image/jpeg"}}, VerdictApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &discordgo.Message{Content: "https://example.com", Attachments: tt.attachments}
			assert.Equal(t, tt.expected, Classify(config.PolicyImageOnly, msg, false))
		})
	}
}

func TestClassify_ThreadIsExempt(t *testing.T) {
	msg := &discordgo.Message{Content: "no link here"}
	assert.Equal(t, VerdictExempt, Classify(config.PolicyLinkOnly, msg, true))
	assert.Equal(t, VerdictExempt, Classify(config.PolicyImageOnly, msg, true))
}

func TestClassify_Unrestricted(t *testing.T) {
	msg := &discordgo.Message{Content: "anything"}
	assert.Equal(t, VerdictApproved, Classify(config.PolicyUnrestricted, msg, false))
}

func TestPolicyTable_Lookup(t *testing.T) {
	table := NewPolicyTable(config.Default().Policies)

	p, ok := table.Lookup("1298225692776857701")
	assert.True(t, ok)
	assert.Equal(t, config.PolicyLinkOnly, p.Kind)

	_, ok = table.Lookup("unknown")
	assert.False(t, ok)
}

func TestRenderTemplate(t *testing.T) {
	got := renderTemplate("{mention}님, {name}의 스레드", "철수", "<@1>")
	assert.Equal(t, "<@1>님, 철수의 스레드", got)
}
