package handlers

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"

	"discord-community-bot/services"
)

var errAlreadyResponded = errors.New("interaction already responded")

// ParsePublicKey は Developer Portal の公開鍵 (hex) を ed25519 の鍵に変換する
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length: %d", len(key))
	}
	return ed25519.PublicKey(key), nil
}

// NewEngine はヘルスチェックとインタラクションエンドポイントを持つ gin エンジンを作る
// publicKey が nil の場合 /interactions は登録しない
func NewEngine(r *Router, publicKey ed25519.PublicKey) *gin.Engine {
	engine := gin.Default()
	engine.GET("/healthz", HandleHealth)
	if publicKey != nil {
		engine.POST("/interactions", HandleInteractions(r, publicKey))
	}
	return engine
}

func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleInteractions は HTTP で届いたインタラクションを検証して Router に渡す
//
// 最初の応答はコールバック API ではなく HTTP レスポンスの本文として返す。
func HandleInteractions(r *Router, publicKey ed25519.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !discordgo.VerifyInteraction(c.Request, publicKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
			return
		}

		var interaction discordgo.Interaction
		if err := json.Unmarshal(body, &interaction); err != nil {
			log.Printf("interaction parse error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		var response *discordgo.InteractionResponse
		r.HandleInteraction(&interaction, services.ResponderFunc(func(resp *discordgo.InteractionResponse) error {
			if response != nil {
				return errAlreadyResponded
			}
			response = resp
			return nil
		}))

		if response == nil {
			log.Printf("interaction not answered (id: %s, type: %s)", interaction.ID, interaction.Type)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no response"})
			return
		}
		c.JSON(http.StatusOK, response)
	}
}
