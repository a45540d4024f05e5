package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"discord-community-bot/config"
)

// RoleButtonPrefix ロールボタンの custom_id 接頭辞 (role:<roleID>)
const RoleButtonPrefix = "role:"

// setup 時に削除する直近メッセージの件数
const roleChannelClearLimit = 10

// RoleToggler はロールボタンの押下を処理する
type RoleToggler struct {
	Platform Platform
	Config   *config.Config
}

func NewRoleToggler(p Platform, cfg *config.Config) *RoleToggler {
	return &RoleToggler{Platform: p, Config: cfg}
}

// HandleButton は押されたボタンのロールを付け外しする
//
// 保持していれば外し、保持していなければ付ける。status グループのロールを
// 付ける場合は、先に同じグループで保持している他のロールを順番に外す。
func (t *RoleToggler) HandleButton(i *discordgo.Interaction, r Responder) {
	roleID := strings.TrimPrefix(i.MessageComponentData().CustomID, RoleButtonPrefix)
	user := interactionUser(i)
	if user == nil || i.Member == nil {
		respond(r, EphemeralMessage("❌ 서버에서만 사용할 수 있습니다."))
		return
	}

	role, err := t.Platform.Role(i.GuildID, roleID)
	if err != nil {
		if !IsNotFound(err) {
			log.Printf("role lookup error (guild: %s, role: %s): %v", i.GuildID, roleID, err)
		}
		respond(r, EphemeralMessage("❌ 역할을 찾을 수 없습니다."))
		return
	}

	group := config.RoleGroupToggle
	if def, ok := t.Config.Role(roleID); ok {
		group = def.Group
	}

	held := make(map[string]bool, len(i.Member.Roles))
	for _, id := range i.Member.Roles {
		held[id] = true
	}

	if held[roleID] {
		if err := t.Platform.RemoveRole(i.GuildID, user.ID, roleID); err != nil {
			t.respondError(r, "role remove", err)
			return
		}
		log.Printf("role removed: %s (user: %s)", roleID, user.ID)
		respond(r, EphemeralMessage(fmt.Sprintf("```diff\n- %s 역할이 제거되었습니다! 🗑️\n```", role.Name)))
		return
	}

	if group == config.RoleGroupStatus {
		for _, sibling := range t.Config.RolesInGroup(group) {
			if sibling.ID == roleID || !held[sibling.ID] {
				continue
			}
			if err := t.Platform.RemoveRole(i.GuildID, user.ID, sibling.ID); err != nil && !IsNotFound(err) {
				t.respondError(r, "exclusive role remove", err)
				return
			}
			log.Printf("exclusive role removed: %s (user: %s)", sibling.ID, user.ID)
		}
	}

	if err := t.Platform.AddRole(i.GuildID, user.ID, roleID); err != nil {
		t.respondError(r, "role add", err)
		return
	}
	log.Printf("role added: %s (user: %s)", roleID, user.ID)
	respond(r, EphemeralMessage(fmt.Sprintf("```diff\n+ %s 역할이 추가되었습니다! ✨\n```", role.Name)))
}

func (t *RoleToggler) respondError(r Responder, op string, err error) {
	switch {
	case IsNotFound(err):
		respond(r, EphemeralMessage("❌ 역할을 찾을 수 없습니다."))
	case IsPermissionDenied(err):
		log.Printf("%s error: %v", op, err)
		respond(r, EphemeralMessage("❌ 봇의 권한이 부족해 역할을 변경할 수 없습니다."))
	default:
		code := reportIncident(op, err)
		respond(r, EphemeralMessage(fmt.Sprintf("❌ 역할 변경 중 오류가 발생했습니다. (오류 코드: %s)", code)))
	}
}

// SetupChannel はロール選択チャンネルの直近メッセージを消し、案内とボタンを送り直す
func (t *RoleToggler) SetupChannel(channelID string) error {
	recent, err := t.Platform.RecentMessages(channelID, roleChannelClearLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch role channel history: %w", err)
	}
	for _, msg := range recent {
		if err := t.Platform.DeleteMessage(channelID, msg.ID); err != nil {
			log.Printf("role channel message delete error (message: %s): %v", msg.ID, err)
		}
	}

	messages := []*discordgo.MessageSend{
		{Embeds: []*discordgo.MessageEmbed{NewEmbedBuilder().
			Title("✨ 역할 선택하기 ✨").
			Description("아래에서 원하는 역할을 선택해주세요!\n역할은 언제든지 변경할 수 있어요 💕").
			Color(ColorPink).
			Footer("같은 버튼을 한 번 더 누르면 역할이 제거됩니다!").
			Build()}},
		{
			Embeds: []*discordgo.MessageEmbed{NewEmbedBuilder().
				Title("🎮 게임 역할 선택 🎮").
				Description("```md\n# 게임 역할 안내 #\n* 여러 게임 역할을 동시에 가질 수 있어요!\n* 게임 친구를 쉽게 찾을 수 있어요 ⭐\n```\n▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔").
				Color(ColorSkyBlue).
				Footer("🎯 원하는 게임을 모두 선택해보세요!").
				Build()},
			Components: t.buttons(config.RoleGroupGame),
		},
		{Embeds: []*discordgo.MessageEmbed{NewEmbedBuilder().
			Description("⋆｡ﾟ☁︎｡⋆｡ ﾟ☾ ﾟ｡⋆ ｡ﾟ☁︎｡⋆｡ﾟ").
			Color(ColorLavender).
			Build()}},
		{
			Embeds: []*discordgo.MessageEmbed{NewEmbedBuilder().
				Title("💝 상태 역할 선택 💝").
				Description("```md\n# 상태 역할 안내 #\n* 커플/솔로 중 하나만 선택할 수 있어요!\n* 다른 상태를 선택하면 이전 상태는 자동으로 제거돼요\n* 디코하자는 자유롭게 토글할 수 있어요 🎧\n```\n▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔▔").
				Color(ColorRose).
				Footer("💫 현재 상태를 표시해보세요!").
				Build()},
			Components: t.buttons(config.RoleGroupStatus, config.RoleGroupToggle),
		},
	}

	for _, msg := range messages {
		if _, err := t.Platform.SendMessage(channelID, msg); err != nil {
			return fmt.Errorf("failed to send role channel message: %w", err)
		}
	}

	log.Printf("role channel initialized: %s", channelID)
	return nil
}

func (t *RoleToggler) buttons(groups ...config.RoleGroup) []discordgo.MessageComponent {
	buttons := make([]discordgo.Button, 0)
	for _, group := range groups {
		for _, role := range t.Config.RolesInGroup(group) {
			buttons = append(buttons, CreateButton(role.Label, role.Emoji, RoleButtonPrefix+role.ID, ButtonStyle(role.Style)))
		}
	}
	return ButtonRows(buttons...)
}

// respond は応答の失敗をログに残すだけにする
func respond(r Responder, resp *discordgo.InteractionResponse) {
	if err := r.Respond(resp); err != nil {
		log.Printf("interaction respond error: %v", err)
	}
}
