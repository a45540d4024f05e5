package main

import (
	"crypto/ed25519"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/bwmarrin/discordgo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"discord-community-bot/config"
	"discord-community-bot/handlers"
	"discord-community-bot/models"
	"discord-community-bot/services"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open index db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("failed to migrate index db: %v", err)
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("failed to create discord session: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	router := handlers.NewRouter(cfg, services.NewDiscordPlatform(session), db)
	scheduler, err := handlers.NewScheduler(router, cfg.Location())
	if err != nil {
		log.Fatal(err)
	}
	router.Scheduler = scheduler
	handlers.RegisterGateway(session, router)

	if err := session.Open(); err != nil {
		log.Fatalf("failed to open discord gateway: %v", err)
	}
	defer session.Close()
	defer scheduler.Stop()

	var publicKey ed25519.PublicKey
	if cfg.PublicKey != "" {
		publicKey, err = handlers.ParsePublicKey(cfg.PublicKey)
		if err != nil {
			log.Fatal(err)
		}
	}

	r := handlers.NewEngine(router, publicKey)
	go func() {
		if err := r.Run(cfg.HTTPAddr); err != nil {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("shutting down")
}
