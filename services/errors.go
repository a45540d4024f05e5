package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

var (
	// ErrNotFound 参照したロール・チャンネル・メッセージが存在しない
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied ボットの権限不足で Discord に拒否された
	ErrPermissionDenied = errors.New("permission denied")
)

var notFoundCodes = map[int]bool{
	discordgo.ErrCodeUnknownChannel: true,
	discordgo.ErrCodeUnknownMember:  true,
	discordgo.ErrCodeUnknownMessage: true,
	discordgo.ErrCodeUnknownRole:    true,
	discordgo.ErrCodeUnknownGuild:   true,
}

var permissionCodes = map[int]bool{
	discordgo.ErrCodeMissingAccess:      true,
	discordgo.ErrCodeMissingPermissions: true,
}

// IsNotFound は err が NotFound に分類されるかを返す
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, discordgo.ErrStateNotFound) {
		return true
	}

	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && notFoundCodes[restErr.Message.Code] {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

// IsPermissionDenied は err が PermissionDenied に分類されるかを返す
func IsPermissionDenied(err error) bool {
	if errors.Is(err, ErrPermissionDenied) {
		return true
	}

	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && permissionCodes[restErr.Message.Code] {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
}

// reportIncident はエラーの詳細をログに残し、ユーザーに見せる短いコードを返す
func reportIncident(op string, err error) string {
	code := uuid.NewString()[:8]
	log.Printf("%s error (incident: %s): %v", op, code, err)
	return code
}
