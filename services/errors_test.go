package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func restError(status, code int) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: status},
		Message:  &discordgo.APIErrorMessage{Code: code},
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		permissionNG bool
	}{
		{"sentinel not found", fmt.Errorf("role R1: %w", ErrNotFound), true, false},
		{"state cache miss", discordgo.ErrStateNotFound, true, false},
		{"unknown role code", restError(http.StatusNotFound, discordgo.ErrCodeUnknownRole), true, false},
		{"unknown message code", restError(http.StatusNotFound, discordgo.ErrCodeUnknownMessage), true, false},
		{"bare 404", restError(http.StatusNotFound, 0), true, false},
		{"missing permissions", restError(http.StatusForbidden, discordgo.ErrCodeMissingPermissions), false, true},
		{"missing access", restError(http.StatusForbidden, discordgo.ErrCodeMissingAccess), false, true},
		{"bare 403", restError(http.StatusForbidden, 0), false, true},
		{"wrapped permission", fmt.Errorf("add role: %w", restError(http.StatusForbidden, 0)), false, true},
		{"server error", restError(http.StatusInternalServerError, 0), false, false},
		{"plain error", errors.New("connection reset"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.permissionNG, IsPermissionDenied(tt.err))
		})
	}
}

func TestReportIncident(t *testing.T) {
	a := reportIncident("test", errors.New("boom"))
	b := reportIncident("test", errors.New("boom"))

	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
