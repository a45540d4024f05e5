package services

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandFunc はプレフィックスコマンドの処理関数
type CommandFunc func(msg *discordgo.Message, args []string) error

type command struct {
	description string
	run         CommandFunc
}

// Commands はどのチャンネルにも属さない汎用プレフィックスコマンドを処理する
type Commands struct {
	Platform Platform
	Prefix   string
	commands map[string]command
}

func NewCommands(p Platform, prefix, nicknamePrefix string) *Commands {
	c := &Commands{
		Platform: p,
		Prefix:   prefix,
		commands: make(map[string]command),
	}
	help := func(msg *discordgo.Message, args []string) error {
		return c.sendHelp(msg.ChannelID, nicknamePrefix)
	}
	c.Register("help", "명령어 목록을 보여줍니다.", help)
	c.Register("도움말", "명령어 목록을 보여줍니다.", help)
	return c
}

func (c *Commands) Register(name, description string, run CommandFunc) {
	c.commands[name] = command{description: description, run: run}
}

// Handle は登録済みのコマンドであれば実行して true を返す
func (c *Commands) Handle(msg *discordgo.Message) bool {
	if c.Prefix == "" || !strings.HasPrefix(msg.Content, c.Prefix) {
		return false
	}

	fields := strings.Fields(strings.TrimPrefix(msg.Content, c.Prefix))
	if len(fields) == 0 {
		return false
	}

	cmd, ok := c.commands[fields[0]]
	if !ok {
		return false
	}

	if err := cmd.run(msg, fields[1:]); err != nil {
		log.Printf("command %s error (channel: %s): %v", fields[0], msg.ChannelID, err)
	}
	return true
}

func (c *Commands) sendHelp(channelID, nicknamePrefix string) error {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := NewEmbedBuilder().
		Title("📚 도움말").
		Color(ColorBlue)
	for _, name := range names {
		builder.Field(c.Prefix+name, c.commands[name].description, false)
	}
	builder.Field(nicknamePrefix+" [새로운 닉네임]", "닉네임 채널에서 닉네임을 변경합니다.", false)

	_, err := c.Platform.SendMessage(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{builder.Build()},
	})
	if err != nil {
		return fmt.Errorf("failed to send help: %w", err)
	}
	return nil
}
