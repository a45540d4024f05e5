package handlers

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"discord-community-bot/services"
)

// NewScheduler は対象タイムゾーンで毎分 Router.Tick を呼ぶ cron を作る
// 起動は Router.HandleReady が行う
func NewScheduler(r *Router, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(services.AnnouncerSchedule, func() {
		r.Tick(time.Now())
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule announcer: %w", err)
	}
	return c, nil
}
