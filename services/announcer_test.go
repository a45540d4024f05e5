package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-community-bot/testutil"
)

const testReminderChannel = "REMINDER"

func setupAnnouncer(t *testing.T) (*Announcer, *testutil.FakePlatform) {
	fake := testutil.NewFakePlatform()
	return NewAnnouncer(fake, setupTestDB(t), testReminderChannel, seoul), fake
}

func TestAnnouncer_FiresOncePerDay(t *testing.T) {
	a, fake := setupAnnouncer(t)
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, seoul)

	posted := 0
	for minute := 0; minute < 24*60; minute++ {
		if a.Tick(start.Add(time.Duration(minute) * time.Minute)) {
			posted++
		}
	}

	assert.Equal(t, 1, posted)
	msgs := fake.ChannelMessages(testReminderChannel)
	require.Len(t, msgs, 1)
	assert.Equal(t, "@here", msgs[0].Content)
	assert.Equal(t, "일일 추천 알림", msgs[0].Embeds[0].Title)
}

func TestAnnouncer_DuplicateTickInSameMinute(t *testing.T) {
	a, fake := setupAnnouncer(t)
	midnight := time.Date(2026, 10, 19, 0, 0, 0, 0, seoul)

	assert.True(t, a.Tick(midnight))
	assert.False(t, a.Tick(midnight.Add(30*time.Second)))
	assert.Len(t, fake.ChannelMessages(testReminderChannel), 1)

	// 翌日はまた送る
	assert.True(t, a.Tick(midnight.AddDate(0, 0, 1)))
}

func TestAnnouncer_UsesTargetTimezone(t *testing.T) {
	a, _ := setupAnnouncer(t)

	// UTC 15:00 はソウルの 0 時
	assert.True(t, a.Tick(time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)))
	assert.False(t, a.Tick(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)))
}

func TestAnnouncer_SendFailureCanRetry(t *testing.T) {
	a, fake := setupAnnouncer(t)
	midnight := time.Date(2026, 10, 19, 0, 0, 0, 0, seoul)

	fake.Errors["SendMessage"] = errors.New("gateway unavailable")
	assert.False(t, a.Tick(midnight))

	delete(fake.Errors, "SendMessage")
	assert.True(t, a.Tick(midnight.Add(20*time.Second)))
}
