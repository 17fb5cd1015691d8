package game

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// runSpawner 房間專屬的機器人生成迴圈
//
// 與 tick 迴圈分離：生成節奏（秒級）和模擬節奏（毫秒級）
// 差兩個數量級，混在同一個迴圈裡只會讓 tick 多一個分支。
// 生命週期由 context 控制，房間停止時隨 cancelSpawner 結束。
func (e *Engine) runSpawner(ctx context.Context, room *Room) {
	ticker := time.NewTicker(e.cfg.BotSpawnInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.spawnBot(room, e.now())
		}
	}
}

// spawnBot 嘗試生成一個機器人
//
// 計時器在暫停期間照常觸發，所以每次都在模擬鎖下重新驗證：
// 遊戲進行中、未達數量上限、距上次生成已滿間隔。
// lastBotSpawn 參與暫停平移，暫停期間的時間不計入生成間隔。
func (e *Engine) spawnBot(room *Room, now time.Time) {
	st := room.State
	st.simMu.Lock()

	if !st.started || st.paused || st.over {
		st.simMu.Unlock()
		return
	}
	if st.Bots.Len() >= e.cfg.MaxBots {
		st.simMu.Unlock()
		return
	}
	if now.Before(st.lastBotSpawn.Add(e.cfg.BotSpawnInterval)) {
		st.simMu.Unlock()
		return
	}
	st.lastBotSpawn = now

	bot := &EnemyBot{
		ID:       uuid.NewString(),
		Pos:      Vec2{X: e.spawnX(), Y: 0},
		Health:   e.cfg.BotMaxHealth,
		Style:    RandomShootingStyle(),
		LastShot: now,
	}
	st.Bots.Store(bot.ID, bot)
	st.simMu.Unlock()

	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventBotAdded,
		Data: botData(bot),
	})
	e.logger.Debug("機器人已生成",
		slog.String("room_name", room.Name),
		slog.String("bot_id", bot.ID),
		slog.String("style", string(bot.Style)))
}

// spawnX 生成點的水平座標，避開左右邊界一段安全距離
func (e *Engine) spawnX() float64 {
	margin := e.cfg.BotSpawnMargin
	usable := e.cfg.MapWidth - 2*margin
	if usable <= 0 {
		return e.cfg.MapWidth / 2
	}
	return margin + rand.Float64()*usable
}
