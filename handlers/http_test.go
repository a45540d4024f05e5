package handlers

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) (*gin.Engine, ed25519.PrivateKey) {
	gin.SetMode(gin.TestMode)
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	r, _ := setupRouter(t)
	return NewEngine(r, pub), priv
}

// signedRequest は Discord と同じ方式で署名したリクエストを作る
func signedRequest(priv ed25519.PrivateKey, body string) *http.Request {
	timestamp := "1760000000"
	sig := ed25519.Sign(priv, []byte(timestamp+body))

	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}

func TestHandleHealth(t *testing.T) {
	engine, _ := setupEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleInteractions_InvalidSignature(t *testing.T) {
	engine, _ := setupEngine(t)
	_, otherKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, signedRequest(otherKey, `{"type":1}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleInteractions_Ping(t *testing.T) {
	engine, priv := setupEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, signedRequest(priv, `{"id":"I1","type":1}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp discordgo.InteractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, discordgo.InteractionResponsePong, resp.Type)
}

func TestHandleInteractions_ComposeButton(t *testing.T) {
	engine, priv := setupEngine(t)
	body := `{
		"id": "I2",
		"type": 3,
		"guild_id": "G1",
		"channel_id": "JOURNAL",
		"member": {"user": {"id": "U1", "username": "chulsoo"}},
		"data": {"custom_id": "journal:compose", "component_type": 2}
	}`

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, signedRequest(priv, body))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Type discordgo.InteractionResponseType `json:"type"`
		Data struct {
			CustomID string `json:"custom_id"`
			Title    string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	assert.Equal(t, "journal:submit", resp.Data.CustomID)
	assert.Equal(t, "오늘의 일기", resp.Data.Title)
}

func TestHandleInteractions_Unanswered(t *testing.T) {
	engine, priv := setupEngine(t)
	body := `{"id":"I3","type":3,"data":{"custom_id":"other:thing","component_type":2}}`

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, signedRequest(priv, body))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestParsePublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	key, err := ParsePublicKey(hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, pub, key)

	_, err = ParsePublicKey("zz")
	assert.Error(t, err)
	_, err = ParsePublicKey("abcdef")
	assert.Error(t, err)
}

func TestNewEngine_WithoutPublicKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, _ := setupRouter(t)
	engine := NewEngine(r, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
