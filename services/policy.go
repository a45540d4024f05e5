package services

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"discord-community-bot/config"
)

// Verdict はメッセージがチャンネルのポリシーを満たすかの判定結果
type Verdict int

const (
	VerdictApproved Verdict = iota
	VerdictViolation
	// VerdictExempt はスレッド内の投稿など判定対象外のメッセージ
	VerdictExempt
)

func (v Verdict) String() string {
	switch v {
	case VerdictApproved:
		return "approved"
	case VerdictViolation:
		return "violation"
	default:
		return "exempt"
	}
}

var linkMarkers = []string{"http://", "https://", "www."}

// PolicyTable チャンネルID からポリシーを引くための読み取り専用テーブル
type PolicyTable struct {
	policies map[string]config.ChannelPolicy
}

func NewPolicyTable(policies []config.ChannelPolicy) *PolicyTable {
	table := &PolicyTable{policies: make(map[string]config.ChannelPolicy, len(policies))}
	for _, p := range policies {
		table.policies[p.ChannelID] = p
	}
	return table
}

func (t *PolicyTable) Lookup(channelID string) (config.ChannelPolicy, bool) {
	p, ok := t.policies[channelID]
	return p, ok
}

// Classify はメッセージがポリシーを満たすかを判定する。副作用はない。
func Classify(kind config.PolicyKind, msg *discordgo.Message, inThread bool) Verdict {
	if inThread {
		return VerdictExempt
	}

	switch kind {
	case config.PolicyLinkOnly:
		if HasLink(msg.Content) {
			return VerdictApproved
		}
		return VerdictViolation
	case config.PolicyImageOnly:
		if HasImage(msg.Attachments) {
			return VerdictApproved
		}
		return VerdictViolation
	default:
		return VerdictApproved
	}
}

// HasLink 本文にリンクらしき文字列が含まれるか
func HasLink(content string) bool {
	for _, marker := range linkMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// HasImage 画像の添付ファイルがあるか
func HasImage(attachments []*discordgo.MessageAttachment) bool {
	for _, att := range attachments {
		if att != nil && strings.Contains(att.ContentType, "image") {
			return true
		}
	}
	return false
}

// renderTemplate は {name} と {mention} を置き換える
func renderTemplate(template, name, mention string) string {
	return strings.NewReplacer("{name}", name, "{mention}", mention).Replace(template)
}
