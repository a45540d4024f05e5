package services

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDiscordPlatform(t *testing.T) *DiscordPlatform {
	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	return NewDiscordPlatform(s)
}

func TestDiscordPlatform_DeleteMessage(t *testing.T) {
	defer gock.Off() // テスト終了時にモックをクリア
	p := setupDiscordPlatform(t)

	gock.New("https://discord.com").
		Delete("/api/v9/channels/C1/messages/M1").
		MatchHeader("Authorization", "Bot test-token").
		Reply(204)

	assert.NoError(t, p.DeleteMessage("C1", "M1"))
	assert.True(t, gock.IsDone(), "すべてのモックが使用されていません")

	// 権限不足のケース
	gock.New("https://discord.com").
		Delete("/api/v9/channels/C1/messages/M2").
		Reply(403).
		JSON(map[string]interface{}{
			"code":    50013,
			"message": "Missing Permissions",
		})

	err := p.DeleteMessage("C1", "M2")
	assert.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
	assert.False(t, IsNotFound(err))
	assert.True(t, gock.IsDone(), "すべてのモックが使用されていません")
}

func TestDiscordPlatform_RoleFallsBackToREST(t *testing.T) {
	defer gock.Off()
	p := setupDiscordPlatform(t)

	gock.New("https://discord.com").
		Get("/api/v9/guilds/G1/roles").
		Times(2).
		Reply(200).
		JSON([]map[string]interface{}{
			{"id": "R1", "name": "커플"},
			{"id": "R2", "name": "솔로"},
		})

	role, err := p.Role("G1", "R2")
	require.NoError(t, err)
	assert.Equal(t, "솔로", role.Name)

	_, err = p.Role("G1", "R9")
	assert.True(t, IsNotFound(err))
	assert.True(t, gock.IsDone(), "すべてのモックが使用されていません")
}

func TestDiscordPlatform_AddRoleUnknownRole(t *testing.T) {
	defer gock.Off()
	p := setupDiscordPlatform(t)

	gock.New("https://discord.com").
		Put("/api/v9/guilds/G1/members/U1/roles/R1").
		Reply(404).
		JSON(map[string]interface{}{
			"code":    10011,
			"message": "Unknown Role",
		})

	err := p.AddRole("G1", "U1", "R1")
	assert.True(t, IsNotFound(err))
	assert.True(t, gock.IsDone(), "すべてのモックが使用されていません")
}

func TestDiscordPlatform_RecentMessages(t *testing.T) {
	defer gock.Off()
	p := setupDiscordPlatform(t)

	gock.New("https://discord.com").
		Get("/api/v9/channels/C1/messages").
		MatchParam("limit", "10").
		Reply(200).
		JSON([]map[string]interface{}{
			{"id": "M2", "channel_id": "C1", "content": "new", "author": map[string]interface{}{"id": "BOT"}},
			{"id": "M1", "channel_id": "C1", "content": "old", "author": map[string]interface{}{"id": "U1"}},
		})

	msgs, err := p.RecentMessages("C1", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "M2", msgs[0].ID)
	assert.Equal(t, "BOT", msgs[0].Author.ID)
	assert.True(t, gock.IsDone(), "すべてのモックが使用されていません")
}

func TestDiscordPlatform_StartThread(t *testing.T) {
	defer gock.Off()
	p := setupDiscordPlatform(t)

	gock.New("https://discord.com").
		Post("/api/v9/channels/C1/messages/M1/threads").
		Reply(201).
		JSON(map[string]interface{}{
			"id":        "M1",
			"parent_id": "C1",
			"name":      "💬 철수의 링크 토론",
			"type":      11,
		})

	thread, err := p.StartThread("C1", "M1", "💬 철수의 링크 토론", ThreadArchiveMinutes)
	require.NoError(t, err)
	assert.Equal(t, "M1", thread.ID)
	assert.True(t, thread.IsThread())
	assert.True(t, gock.IsDone(), "すべてのモックが使用されていません")
}

func TestDiscordPlatform_SetNicknameForbidden(t *testing.T) {
	defer gock.Off()
	p := setupDiscordPlatform(t)

	gock.New("https://discord.com").
		Patch("/api/v9/guilds/G1/members/U1").
		Reply(403).
		JSON(map[string]interface{}{
			"code":    50013,
			"message": "Missing Permissions",
		})

	err := p.SetNickname("G1", "U1", "새닉")
	assert.True(t, IsPermissionDenied(err))
	assert.True(t, gock.IsDone(), "すべてのモックが使用されていません")
}

func TestDiscordPlatform_BotUserIDBeforeReady(t *testing.T) {
	p := setupDiscordPlatform(t)
	assert.Equal(t, "", p.BotUserID())

	p.Session.State.User = &discordgo.User{ID: "BOT"}
	assert.Equal(t, "BOT", p.BotUserID())
}
