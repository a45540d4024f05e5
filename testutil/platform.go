// Package testutil はサービスとハンドラのテストで共有するフェイクを提供する
package testutil

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// FakePlatform はメモリ上で Discord の状態を再現する Platform 実装
//
// チャンネルのメッセージ、スレッド、ロール、ニックネームを保持し、
// 呼び出しを Calls に記録する。Errors にメソッド名をキーとして
// エラーを入れると、そのメソッドは状態を変えずにエラーを返す。
type FakePlatform struct {
	mu sync.Mutex

	BotID    string
	GuildID  string
	Presence string

	Messages    map[string][]*discordgo.Message
	Threads     map[string]*discordgo.Channel
	Roles       map[string]*discordgo.Role
	MemberRoles map[string]map[string]bool
	Nicknames   map[string]string

	Calls  []string
	Errors map[string]error

	nextID int
}

func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		BotID:       "BOT",
		GuildID:     "G1",
		Messages:    make(map[string][]*discordgo.Message),
		Threads:     make(map[string]*discordgo.Channel),
		Roles:       make(map[string]*discordgo.Role),
		MemberRoles: make(map[string]map[string]bool),
		Nicknames:   make(map[string]string),
		Errors:      make(map[string]error),
		nextID:      1000,
	}
}

// NotFoundError は Discord の 404 応答を模した RESTError を返す
func NotFoundError(code int) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found"},
		Message:  &discordgo.APIErrorMessage{Code: code, Message: "Unknown"},
	}
}

// ForbiddenError は権限不足の 403 応答を模した RESTError を返す
func ForbiddenError() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden, Status: "403 Forbidden"},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
	}
}

func (f *FakePlatform) record(format string, args ...interface{}) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *FakePlatform) newID() string {
	f.nextID++
	return fmt.Sprintf("%d", f.nextID)
}

func (f *FakePlatform) BotUserID() string {
	return f.BotID
}

func (f *FakePlatform) SetPresence(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["SetPresence"]; err != nil {
		return err
	}
	f.Presence = name
	f.record("SetPresence %s", name)
	return nil
}

func (f *FakePlatform) SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["SendMessage"]; err != nil {
		return nil, err
	}

	sent := &discordgo.Message{
		ID:         f.newID(),
		ChannelID:  channelID,
		GuildID:    f.GuildID,
		Content:    msg.Content,
		Embeds:     msg.Embeds,
		Components: msg.Components,
		Author:     &discordgo.User{ID: f.BotID, Bot: true},
	}
	f.Messages[channelID] = append(f.Messages[channelID], sent)
	f.record("SendMessage %s %s", channelID, sent.ID)
	return sent, nil
}

// AddUserMessage はユーザーの投稿をチャンネルに追加する
func (f *FakePlatform) AddUserMessage(channelID string, msg *discordgo.Message) *discordgo.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg.ID == "" {
		msg.ID = f.newID()
	}
	msg.ChannelID = channelID
	msg.GuildID = f.GuildID
	f.Messages[channelID] = append(f.Messages[channelID], msg)
	return msg
}

func (f *FakePlatform) find(channelID, messageID string) (int, *discordgo.Message) {
	for i, m := range f.Messages[channelID] {
		if m.ID == messageID {
			return i, m
		}
	}
	return -1, nil
}

func (f *FakePlatform) Message(channelID, messageID string) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["Message"]; err != nil {
		return nil, err
	}
	_, m := f.find(channelID, messageID)
	if m == nil {
		return nil, NotFoundError(discordgo.ErrCodeUnknownMessage)
	}
	return m, nil
}

func (f *FakePlatform) EditMessageEmbeds(channelID, messageID string, embeds []*discordgo.MessageEmbed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["EditMessageEmbeds"]; err != nil {
		return err
	}
	_, m := f.find(channelID, messageID)
	if m == nil {
		return NotFoundError(discordgo.ErrCodeUnknownMessage)
	}
	m.Embeds = embeds
	f.record("EditMessageEmbeds %s %s", channelID, messageID)
	return nil
}

func (f *FakePlatform) DeleteMessage(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["DeleteMessage"]; err != nil {
		return err
	}
	i, m := f.find(channelID, messageID)
	if m == nil {
		return NotFoundError(discordgo.ErrCodeUnknownMessage)
	}
	msgs := f.Messages[channelID]
	f.Messages[channelID] = append(msgs[:i:i], msgs[i+1:]...)
	f.record("DeleteMessage %s %s", channelID, messageID)
	return nil
}

func (f *FakePlatform) RecentMessages(channelID string, limit int) ([]*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["RecentMessages"]; err != nil {
		return nil, err
	}
	msgs := f.Messages[channelID]
	recent := make([]*discordgo.Message, 0, limit)
	for i := len(msgs) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, msgs[i])
	}
	return recent, nil
}

// StartThread は Discord と同じくスレッドID を元メッセージID と一致させる
func (f *FakePlatform) StartThread(channelID, messageID, name string, archiveMinutes int) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["StartThread"]; err != nil {
		return nil, err
	}
	if _, m := f.find(channelID, messageID); m == nil {
		return nil, NotFoundError(discordgo.ErrCodeUnknownMessage)
	}
	thread := &discordgo.Channel{
		ID:       messageID,
		GuildID:  f.GuildID,
		ParentID: channelID,
		Name:     name,
		Type:     discordgo.ChannelTypeGuildPublicThread,
		ThreadMetadata: &discordgo.ThreadMetadata{
			AutoArchiveDuration: archiveMinutes,
		},
	}
	f.Threads[thread.ID] = thread
	f.record("StartThread %s %s %s", channelID, messageID, name)
	return thread, nil
}

func (f *FakePlatform) ActiveThreads(guildID string) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["ActiveThreads"]; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(f.Threads))
	for id := range f.Threads {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	threads := make([]*discordgo.Channel, 0, len(ids))
	for _, id := range ids {
		threads = append(threads, f.Threads[id])
	}
	return threads, nil
}

func (f *FakePlatform) DeleteChannel(channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["DeleteChannel"]; err != nil {
		return err
	}
	if _, ok := f.Threads[channelID]; !ok {
		return NotFoundError(discordgo.ErrCodeUnknownChannel)
	}
	delete(f.Threads, channelID)
	delete(f.Messages, channelID)
	f.record("DeleteChannel %s", channelID)
	return nil
}

func (f *FakePlatform) Role(guildID, roleID string) (*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.Roles[roleID]
	if !ok {
		return nil, NotFoundError(discordgo.ErrCodeUnknownRole)
	}
	return role, nil
}

// AddGuildRole はサーバーにロールを作成する
func (f *FakePlatform) AddGuildRole(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Roles[id] = &discordgo.Role{ID: id, Name: name}
}

// GiveRole はテストの前提としてユーザーにロールを持たせる
func (f *FakePlatform) GiveRole(userID, roleID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MemberRoles[userID] == nil {
		f.MemberRoles[userID] = make(map[string]bool)
	}
	f.MemberRoles[userID][roleID] = true
}

// HeldRoles はユーザーが保持しているロールID をソートして返す
func (f *FakePlatform) HeldRoles(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	roles := make([]string, 0)
	for id, held := range f.MemberRoles[userID] {
		if held {
			roles = append(roles, id)
		}
	}
	sort.Strings(roles)
	return roles
}

func (f *FakePlatform) AddRole(guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["AddRole"]; err != nil {
		return err
	}
	if f.MemberRoles[userID] == nil {
		f.MemberRoles[userID] = make(map[string]bool)
	}
	f.MemberRoles[userID][roleID] = true
	f.record("AddRole %s %s", userID, roleID)
	return nil
}

func (f *FakePlatform) RemoveRole(guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["RemoveRole"]; err != nil {
		return err
	}
	delete(f.MemberRoles[userID], roleID)
	f.record("RemoveRole %s %s", userID, roleID)
	return nil
}

func (f *FakePlatform) SetNickname(guildID, userID, nickname string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errors["SetNickname"]; err != nil {
		return err
	}
	f.Nicknames[userID] = nickname
	f.record("SetNickname %s %s", userID, nickname)
	return nil
}

// ChannelMessages はチャンネルのメッセージを古い順に返す
func (f *FakePlatform) ChannelMessages(channelID string) []*discordgo.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.Message(nil), f.Messages[channelID]...)
}

// CallCount は prefix で始まる呼び出しの回数を返す
func (f *FakePlatform) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.Calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			count++
		}
	}
	return count
}

// RecordingResponder はインタラクションへの応答を記録する
type RecordingResponder struct {
	Responses []*discordgo.InteractionResponse
	Err       error
}

func (r *RecordingResponder) Respond(resp *discordgo.InteractionResponse) error {
	if r.Err != nil {
		return r.Err
	}
	r.Responses = append(r.Responses, resp)
	return nil
}

// Last は最後の応答を返す。応答が無ければ nil
func (r *RecordingResponder) Last() *discordgo.InteractionResponse {
	if len(r.Responses) == 0 {
		return nil
	}
	return r.Responses[len(r.Responses)-1]
}
