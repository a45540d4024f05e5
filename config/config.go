package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PolicyKind チャンネルに投稿できるコンテンツの種類
type PolicyKind string

const (
	PolicyLinkOnly     PolicyKind = "link"
	PolicyImageOnly    PolicyKind = "image"
	PolicyUnrestricted PolicyKind = "unrestricted"
)

// RoleGroup ロールボタンの振る舞いを決めるグループ
type RoleGroup string

const (
	// RoleGroupGame は複数同時に保持できる
	RoleGroupGame RoleGroup = "game"
	// RoleGroupStatus はグループ内で一つだけ保持できる
	RoleGroupStatus RoleGroup = "status"
	// RoleGroupToggle は他と独立してオン/オフする
	RoleGroupToggle RoleGroup = "toggle"
)

type ChannelPolicy struct {
	ChannelID    string     `yaml:"channel"`
	Kind         PolicyKind `yaml:"kind"`
	ThreadName   string     `yaml:"thread_name"`
	ThreadPrompt string     `yaml:"thread_prompt"`
	Warning      string     `yaml:"warning"`
}

type RoleDefinition struct {
	ID    string    `yaml:"id"`
	Label string    `yaml:"label"`
	Emoji string    `yaml:"emoji"`
	Group RoleGroup `yaml:"group"`
	// Style は primary, secondary, success, danger のいずれか
	Style string `yaml:"style"`
}

type Channels struct {
	Reminder string `yaml:"reminder"`
	Nickname string `yaml:"nickname"`
	Journal  string `yaml:"journal"`
	Roles    string `yaml:"roles"`
}

type Config struct {
	Token     string `yaml:"-"`
	PublicKey string `yaml:"-"`
	HTTPAddr  string `yaml:"-"`
	DBPath    string `yaml:"-"`

	Timezone       string          `yaml:"timezone"`
	Presence       string          `yaml:"presence"`
	NicknamePrefix string          `yaml:"nickname_prefix"`
	CommandPrefix  string          `yaml:"command_prefix"`
	Channels       Channels        `yaml:"channels"`
	Policies       []ChannelPolicy `yaml:"policies"`
	Roles          []RoleDefinition `yaml:"roles"`

	location *time.Location
}

// Load はデフォルト値、BOT_CONFIG_FILE の YAML、環境変数の順に設定を重ねる
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("BOT_CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Token = getenv("DISCORD_TOKEN", cfg.Token)
	cfg.PublicKey = getenv("DISCORD_PUBLIC_KEY", cfg.PublicKey)
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DBPath = getenv("DB_PATH", cfg.DBPath)
	cfg.Timezone = getenv("BOT_TIMEZONE", cfg.Timezone)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.Timezone != "" {
		c.Timezone = file.Timezone
	}
	if file.Presence != "" {
		c.Presence = file.Presence
	}
	if file.NicknamePrefix != "" {
		c.NicknamePrefix = file.NicknamePrefix
	}
	if file.CommandPrefix != "" {
		c.CommandPrefix = file.CommandPrefix
	}
	if file.Channels.Reminder != "" {
		c.Channels.Reminder = file.Channels.Reminder
	}
	if file.Channels.Nickname != "" {
		c.Channels.Nickname = file.Channels.Nickname
	}
	if file.Channels.Journal != "" {
		c.Channels.Journal = file.Channels.Journal
	}
	if file.Channels.Roles != "" {
		c.Channels.Roles = file.Channels.Roles
	}
	// テーブルは部分的にマージせず丸ごと置き換える
	if len(file.Policies) > 0 {
		c.Policies = file.Policies
	}
	if len(file.Roles) > 0 {
		c.Roles = file.Roles
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("DISCORD_TOKEN is not set")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	seen := make(map[string]bool)
	for _, p := range c.Policies {
		switch p.Kind {
		case PolicyLinkOnly, PolicyImageOnly, PolicyUnrestricted:
		default:
			return fmt.Errorf("unknown policy kind %q for channel %s", p.Kind, p.ChannelID)
		}
		if seen[p.ChannelID] {
			return fmt.Errorf("duplicate policy for channel %s", p.ChannelID)
		}
		seen[p.ChannelID] = true
	}

	for _, r := range c.Roles {
		switch r.Group {
		case RoleGroupGame, RoleGroupStatus, RoleGroupToggle:
		default:
			return fmt.Errorf("unknown role group %q for role %s", r.Group, r.ID)
		}
	}
	return nil
}

// Location は Validate 後に設定されたタイムゾーンを返す
func (c *Config) Location() *time.Location {
	if c.location == nil {
		if loc, err := time.LoadLocation(c.Timezone); err == nil {
			c.location = loc
		} else {
			return time.UTC
		}
	}
	return c.location
}

// RolesInGroup は指定グループのロールを定義順に返す
func (c *Config) RolesInGroup(group RoleGroup) []RoleDefinition {
	roles := make([]RoleDefinition, 0)
	for _, r := range c.Roles {
		if r.Group == group {
			roles = append(roles, r)
		}
	}
	return roles
}

func (c *Config) Role(id string) (RoleDefinition, bool) {
	for _, r := range c.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return RoleDefinition{}, false
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
