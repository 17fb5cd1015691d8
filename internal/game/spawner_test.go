package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpawnBot 測試機器人生成的守門條件
func TestSpawnBot(t *testing.T) {
	tests := []struct {
		name      string
		prepare   func(e *Engine, st *RoomState, now time.Time)
		wantSpawn bool
	}{
		{
			name: "spawns when interval elapsed",
			prepare: func(e *Engine, st *RoomState, now time.Time) {
				st.lastBotSpawn = now.Add(-e.cfg.BotSpawnInterval)
			},
			wantSpawn: true,
		},
		{
			name: "interval not yet elapsed",
			prepare: func(e *Engine, st *RoomState, now time.Time) {
				st.lastBotSpawn = now.Add(-time.Second)
			},
			wantSpawn: false,
		},
		{
			name: "paused room does not spawn",
			prepare: func(e *Engine, st *RoomState, now time.Time) {
				st.lastBotSpawn = now.Add(-e.cfg.BotSpawnInterval)
				st.paused = true
			},
			wantSpawn: false,
		},
		{
			name: "finished game does not spawn",
			prepare: func(e *Engine, st *RoomState, now time.Time) {
				st.lastBotSpawn = now.Add(-e.cfg.BotSpawnInterval)
				st.over = true
			},
			wantSpawn: false,
		},
		{
			name: "not started does not spawn",
			prepare: func(e *Engine, st *RoomState, now time.Time) {
				st.lastBotSpawn = now.Add(-e.cfg.BotSpawnInterval)
				st.started = false
			},
			wantSpawn: false,
		},
		{
			name: "at capacity does not spawn",
			prepare: func(e *Engine, st *RoomState, now time.Time) {
				st.lastBotSpawn = now.Add(-e.cfg.BotSpawnInterval)
				for i := 0; i < e.cfg.MaxBots; i++ {
					id := fmt.Sprintf("bot-%d", i)
					st.Bots.Store(id, &EnemyBot{ID: id, Health: 100, LastShot: now})
				}
			},
			wantSpawn: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, reg, rb, clock := newTestEngine(t)
			room := setupRunningGame(t, e, reg)
			st := room.State

			st.simMu.Lock()
			tt.prepare(e, st, clock.Now())
			before := st.Bots.Len()
			st.simMu.Unlock()
			rb.reset()

			e.spawnBot(room, clock.Now())

			if !tt.wantSpawn {
				assert.Equal(t, before, st.Bots.Len())
				assert.Empty(t, rb.byType(EventBotAdded))
				return
			}

			require.Equal(t, before+1, st.Bots.Len())
			assert.Len(t, rb.byType(EventBotAdded), 1)

			st.Bots.Range(func(_ string, bot *EnemyBot) bool {
				assert.Equal(t, e.cfg.BotMaxHealth, bot.Health)
				assert.Zero(t, bot.Pos.Y)
				assert.GreaterOrEqual(t, bot.Pos.X, e.cfg.BotSpawnMargin)
				assert.LessOrEqual(t, bot.Pos.X, e.cfg.MapWidth-e.cfg.BotSpawnMargin)
				assert.Contains(t, []ShootingStyle{StyleStraight, StyleSpread, StyleRandom}, bot.Style)
				return true
			})
		})
	}
}

// TestSpawnBot_UpdatesLastSpawn 測試生成後重設間隔基準
func TestSpawnBot_UpdatesLastSpawn(t *testing.T) {
	e, reg, _, clock := newTestEngine(t)
	room := setupRunningGame(t, e, reg)
	st := room.State

	st.simMu.Lock()
	st.lastBotSpawn = clock.Now().Add(-e.cfg.BotSpawnInterval)
	st.simMu.Unlock()

	e.spawnBot(room, clock.Now())
	require.Equal(t, 1, st.Bots.Len())

	// 剛生成過，立刻再試不會生成
	e.spawnBot(room, clock.Now())
	assert.Equal(t, 1, st.Bots.Len())

	// 滿間隔後再次生成
	clock.Advance(e.cfg.BotSpawnInterval)
	e.spawnBot(room, clock.Now())
	assert.Equal(t, 2, st.Bots.Len())
}

// TestSpawnX_WithinMargins 測試生成點的水平範圍
func TestSpawnX_WithinMargins(t *testing.T) {
	e, _, _, _ := newTestEngine(t)

	for i := 0; i < 200; i++ {
		x := e.spawnX()
		assert.GreaterOrEqual(t, x, e.cfg.BotSpawnMargin)
		assert.LessOrEqual(t, x, e.cfg.MapWidth-e.cfg.BotSpawnMargin)
	}
}

// TestSpawnX_DegenerateMap 測試地圖窄於安全邊界時退回中點
func TestSpawnX_DegenerateMap(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.cfg.MapWidth = 80
	e.cfg.BotSpawnMargin = 50

	assert.Equal(t, 40.0, e.spawnX())
}
