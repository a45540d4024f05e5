package handlers

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"discord-community-bot/config"
	"discord-community-bot/services"
)

// Starter は Ready で一度だけ起動するスケジューラ
type Starter interface {
	Start()
}

// Router は Gateway と HTTP から届くイベントを各サービスに振り分ける
//
// すべての入口は mu で直列化され、同時に処理されるイベントは常に一つ。
// Ready は再接続のたびに届くので、スケジューラの起動は once で一度に限る。
type Router struct {
	Config    *config.Config
	Platform  services.Platform
	Moderator *services.Moderator
	Roles     *services.RoleToggler
	Journal   *services.Journal
	Nickname  *services.NicknameCommand
	Commands  *services.Commands
	Announcer *services.Announcer
	Scheduler Starter

	mu   sync.Mutex
	once sync.Once
}

func NewRouter(cfg *config.Config, p services.Platform, db *gorm.DB) *Router {
	return &Router{
		Config:    cfg,
		Platform:  p,
		Moderator: services.NewModerator(p, services.NewPolicyTable(cfg.Policies)),
		Roles:     services.NewRoleToggler(p, cfg),
		Journal:   services.NewJournal(p, db, cfg.Location()),
		Nickname:  services.NewNicknameCommand(p, cfg.NicknamePrefix),
		Commands:  services.NewCommands(p, cfg.CommandPrefix, cfg.NicknamePrefix),
		Announcer: services.NewAnnouncer(p, db, cfg.Channels.Reminder, cfg.Location()),
	}
}

// HandleReady はプレゼンス設定、ロールチャンネルと日記 compose メッセージの再作成を行う
func (r *Router) HandleReady() {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Printf("bot ready: %s", r.Platform.BotUserID())

	if r.Config.Presence != "" {
		if err := r.Platform.SetPresence(r.Config.Presence); err != nil {
			log.Printf("presence update error: %v", err)
		}
	}

	if r.Config.Channels.Roles != "" {
		if err := r.Roles.SetupChannel(r.Config.Channels.Roles); err != nil {
			log.Printf("role channel setup error (channel: %s): %v", r.Config.Channels.Roles, err)
		}
	}

	if r.Config.Channels.Journal != "" {
		if err := r.Journal.RefreshPrompt(r.Config.Channels.Journal); err != nil {
			log.Printf("journal prompt refresh error (channel: %s): %v", r.Config.Channels.Journal, err)
		}
	}

	if r.Scheduler != nil {
		r.once.Do(func() {
			r.Scheduler.Start()
			log.Println("announcer scheduler started")
		})
	}
}

// HandleMessage はメッセージをチャンネルごとの処理に振り分ける
func (r *Router) HandleMessage(msg *discordgo.Message, inThread bool) {
	if msg.Author == nil || msg.Author.ID == r.Platform.BotUserID() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if handled, verdict := r.Moderator.HandleMessage(msg, inThread); handled {
		log.Printf("policy verdict %s (channel: %s, message: %s)", verdict, msg.ChannelID, msg.ID)
		return
	}

	if msg.ChannelID == r.Config.Channels.Nickname && r.Nickname.Handle(msg) {
		return
	}

	r.Commands.Handle(msg)
}

// HandleInteraction は custom_id を見てボタンとモーダルを振り分ける
func (r *Router) HandleInteraction(i *discordgo.Interaction, resp services.Responder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch i.Type {
	case discordgo.InteractionPing:
		if err := resp.Respond(&discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}); err != nil {
			log.Printf("pong respond error: %v", err)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, services.RoleButtonPrefix):
			r.Roles.HandleButton(i, resp)
		case customID == services.JournalComposeID:
			r.Journal.OpenCompose(i, resp)
		case strings.HasPrefix(customID, services.JournalEditPrefix):
			r.Journal.OpenEdit(i, resp)
		case strings.HasPrefix(customID, services.JournalDeletePrefix):
			r.Journal.Delete(i, resp)
		default:
			log.Printf("unknown component custom_id: %s", customID)
		}

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		switch {
		case customID == services.JournalSubmitID:
			r.Journal.Submit(i, resp)
		case strings.HasPrefix(customID, services.JournalUpdatePrefix):
			r.Journal.SubmitEdit(i, resp)
		default:
			log.Printf("unknown modal custom_id: %s", customID)
		}

	default:
		log.Printf("unhandled interaction type: %s", i.Type)
	}
}

// Tick はスケジューラから毎分呼ばれる
func (r *Router) Tick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Announcer.Tick(now)
}
