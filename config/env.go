package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv はカレントディレクトリの .env があれば環境変数に読み込む
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not loaded")
	}
}
