package game

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/koopa0/knights-arena/pkg/errors"
)

// GameResult 一名玩家的終局成績
type GameResult struct {
	RoomName   string
	PlayerName string
	Score      float64
	FinishedAt time.Time
}

// ResultStore 終局成績的持久化出口
//
// 接受介面、回傳結構：引擎不關心後端是 PostgreSQL、
// Redis 還是測試用的記錄器。儲存失敗不影響遊戲流程。
type ResultStore interface {
	SaveResult(ctx context.Context, result GameResult) error
}

// Engine 權威模擬引擎
//
// 系統設計問題：
// 伺服器是遊戲狀態的唯一權威。客戶端只送「意圖」（按鍵、射擊），
// 所有移動、碰撞、傷害、計分都在伺服器端以固定頻率推進，
// 結果以事件廣播回所有客戶端。
//
// 核心挑戰：
//  1. 指令（任意時刻到達）與 tick（固定頻率）併發觸碰同一房間的狀態
//  2. 暫停期間任何冷卻與間隔都不能流逝
//  3. 任何一個房間的 panic 不能拖垮整個行程
//
// 設計方案：
//  1. 每房間一把模擬鎖（simMu）序列化 tick 本體與會改動實體的指令
//  2. 恢復時以暫停時長平移所有時間戳（見 shiftTimestampsLocked）
//  3. tick 的每個階段都在 recover 保護下執行
type Engine struct {
	cfg         Config
	registry    *Registry
	broadcaster Broadcaster
	results     ResultStore // 可為 nil（測試、無持久化部署）
	logger      *slog.Logger

	// 可注入的時鐘，測試時替換
	now func() time.Time
}

// NewEngine 創建引擎
func NewEngine(cfg Config, registry *Registry, broadcaster Broadcaster, results ResultStore, logger *slog.Logger) *Engine {
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}
	return &Engine{
		cfg:         cfg,
		registry:    registry,
		broadcaster: broadcaster,
		results:     results,
		logger:      logger,
		now:         time.Now,
	}
}

// Config 引擎使用的遊戲規則配置
func (e *Engine) Config() Config {
	return e.cfg
}

// StartGame 開始遊戲（只有房主可以）
//
// 為名冊中的每位成員在出生點建立滿血玩家，廣播開局快照，
// 然後啟動這個房間專屬的 tick 迴圈與機器人生成器。
func (e *Engine) StartGame(callerID string) error {
	room, ok := e.registry.RoomOf(callerID)
	if !ok {
		return apperrors.ErrNotMember
	}
	if room.Leader() != callerID {
		return apperrors.ErrNotLeader
	}

	st := room.State
	st.simMu.Lock()
	if st.over {
		st.simMu.Unlock()
		return apperrors.ErrGameOver
	}
	if st.started {
		st.simMu.Unlock()
		return apperrors.ErrGameStarted
	}

	now := e.now()
	for _, m := range room.BeginMatch() {
		st.Players.Store(m.ConnectionID, &Player{
			ConnectionID: m.ConnectionID,
			Name:         m.Name,
			Pos:          Vec2{X: e.cfg.PlayerSpawnX, Y: e.cfg.PlayerSpawnY},
			Health:       e.cfg.PlayerMaxHealth,
		})
	}

	st.started = true
	st.paused = false
	st.score = 0
	st.lastTick = now
	st.lastBotSpawn = now

	stop := make(chan struct{})
	st.stopTick = stop
	ctx, cancel := context.WithCancel(context.Background())
	st.cancelSpawner = cancel
	st.simMu.Unlock()

	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventGameStarted,
		Data: e.snapshot(st),
	})

	go e.runTicker(room, stop)
	go e.runSpawner(ctx, room)

	e.logger.Info("遊戲已開始",
		slog.String("room_name", room.Name),
		slog.Int("players", st.Players.Len()))
	return nil
}

// StopGame 停止遊戲並把房間重置回大廳（只有房主可以）
//
// 冪等：停止未開始的遊戲是 no-op。
func (e *Engine) StopGame(callerID string) error {
	room, ok := e.registry.RoomOf(callerID)
	if !ok {
		return apperrors.ErrNotMember
	}
	if room.Leader() != callerID {
		return apperrors.ErrNotLeader
	}

	st := room.State
	st.simMu.Lock()
	if !st.started {
		st.simMu.Unlock()
		return nil
	}
	e.resetToLobbyLocked(room, st)
	st.simMu.Unlock()

	e.broadcaster.BroadcastRoom(room.Name, Event{Type: EventGameStopped, Data: nil})
	e.logger.Info("遊戲已停止", slog.String("room_name", room.Name))
	return nil
}

// resetToLobbyLocked 停掉迴圈、清空所有模擬狀態並重新開放名冊
//
// 呼叫端必須持有 simMu。
func (e *Engine) resetToLobbyLocked(room *Room, st *RoomState) {
	st.stopLocked()
	room.EndMatch()
	st.started = false
	st.paused = false
	st.over = false
	st.pauseStart = nil
	st.score = 0

	st.ClearAllActions()
	st.Players.Range(func(id string, _ *Player) bool {
		st.Players.Delete(id)
		return true
	})
	st.Bots.Range(func(id string, _ *EnemyBot) bool {
		st.Bots.Delete(id)
		return true
	})
	st.PlayerBullets.Range(func(id string, _ *Bullet) bool {
		st.PlayerBullets.Delete(id)
		return true
	})
	st.BotBullets.Range(func(id string, _ *EnemyBullet) bool {
		st.BotBullets.Delete(id)
		return true
	})
}

// TogglePause 切換暫停狀態（只有房主可以）
//
// 恢復時把暫停時長平移進所有時間戳，
// 讓暫停期間的時間完全不計入冷卻、生成間隔與 dt。
func (e *Engine) TogglePause(callerID string) error {
	room, ok := e.registry.RoomOf(callerID)
	if !ok {
		return apperrors.ErrNotMember
	}
	if room.Leader() != callerID {
		return apperrors.ErrNotLeader
	}

	st := room.State
	st.simMu.Lock()
	if !st.started {
		st.simMu.Unlock()
		return apperrors.ErrGameNotStarted
	}
	if st.over {
		st.simMu.Unlock()
		return apperrors.ErrGameOver
	}

	var paused bool
	if st.paused {
		if st.pauseStart != nil {
			st.shiftTimestampsLocked(e.now().Sub(*st.pauseStart))
		}
		st.pauseStart = nil
		st.paused = false
	} else {
		t := e.now()
		st.pauseStart = &t
		st.paused = true
		paused = true
	}
	st.simMu.Unlock()

	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventGamePaused,
		Data: GamePausedData{Paused: paused},
	})
	return nil
}

// Fire 玩家射擊
//
// 伺服器端冷卻：距離上次射擊不足 ShotCooldown 的請求直接拒絕，
// 不信任客戶端的節流。子彈從玩家當前位置垂直向上發射。
func (e *Engine) Fire(callerID string) error {
	room, ok := e.registry.RoomOf(callerID)
	if !ok {
		return apperrors.ErrNotMember
	}

	st := room.State
	st.simMu.Lock()
	if !st.started {
		st.simMu.Unlock()
		return apperrors.ErrGameNotStarted
	}
	if st.over {
		st.simMu.Unlock()
		return apperrors.ErrGameOver
	}
	if st.paused {
		st.simMu.Unlock()
		return apperrors.New(apperrors.ErrCodeInvalidState, "遊戲暫停中")
	}

	p, ok := st.Players.Load(callerID)
	if !ok {
		st.simMu.Unlock()
		return apperrors.ErrNotMember
	}
	if !p.Alive() {
		st.simMu.Unlock()
		return apperrors.ErrPlayerDead
	}

	now := e.now()
	if now.Sub(p.LastShot) < e.cfg.ShotCooldown {
		st.simMu.Unlock()
		return apperrors.ErrShotOnCooldown
	}
	p.LastShot = now

	b := &Bullet{
		ID:      uuid.NewString(),
		OwnerID: callerID,
		Pos:     p.Pos,
		Vel:     Vec2{X: 0, Y: -e.cfg.PlayerBulletSpeed},
	}
	st.PlayerBullets.Store(b.ID, b)
	st.simMu.Unlock()

	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventBulletSpawned,
		Data: bulletData(b),
	})
	return nil
}

// UpdateAction 更新玩家的移動意圖
//
// 只記錄意圖，實際位移由 tick 以固定頻率積分。
// 開局後中途加入輸入的成員在此惰性建立玩家實體。
func (e *Engine) UpdateAction(callerID, action string) error {
	dir, pressed, valid := ParseAction(action)
	if !valid {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "未知的動作").WithDetails(action)
	}

	room, ok := e.registry.RoomOf(callerID)
	if !ok {
		return apperrors.ErrNotMember
	}

	st := room.State
	st.simMu.Lock()
	if st.started && !st.over {
		if _, exists := st.Players.Load(callerID); !exists {
			name, _ := room.DisplayName(callerID)
			st.Players.Store(callerID, &Player{
				ConnectionID: callerID,
				Name:         name,
				Pos:          Vec2{X: e.cfg.PlayerSpawnX, Y: e.cfg.PlayerSpawnY},
				Health:       e.cfg.PlayerMaxHealth,
			})
		}
	}
	st.simMu.Unlock()

	st.SetAction(callerID, dir, pressed)
	return nil
}

// ReportDeath 客戶端回報自身死亡
//
// 伺服器照常以碰撞判定死亡，這個入口涵蓋客戶端側的死因
// （例如與機器人相撞的本地判定）。只在存活轉為死亡時生效。
func (e *Engine) ReportDeath(callerID string) error {
	room, ok := e.registry.RoomOf(callerID)
	if !ok {
		return apperrors.ErrNotMember
	}

	st := room.State
	st.simMu.Lock()
	if !st.started || st.over {
		st.simMu.Unlock()
		return apperrors.ErrGameNotStarted
	}
	p, ok := st.Players.Load(callerID)
	if !ok || !p.Alive() {
		st.simMu.Unlock()
		return nil
	}
	p.Health = 0
	score := st.score

	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventPlayerDied,
		Data: playerData(p),
	})
	e.saveResult(room.Name, p.Name, score)
	e.checkGameOverLocked(room, st)
	st.simMu.Unlock()
	return nil
}

// LeaveRoom 連接離開它所屬的房間（明確離開與斷線共用）
//
// 冪等：不在任何房間的連接是 no-op。
// 名冊清空時停掉迴圈並銷毀房間。
func (e *Engine) LeaveRoom(connectionID string) {
	room, _, empty := e.registry.RemoveMember(connectionID)
	if room == nil {
		return
	}

	st := room.State
	st.ClearActions(connectionID)
	st.simMu.Lock()
	st.Players.Delete(connectionID)
	if empty {
		st.stopLocked()
	} else if st.started && !st.over {
		e.checkGameOverLocked(room, st)
	}
	st.simMu.Unlock()

	if empty {
		e.registry.RemoveRoom(room.Name)
		return
	}

	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventPlayerLeft,
		Data: MemberData{ConnectionID: connectionID},
	})
	e.broadcaster.BroadcastRoom(room.Name, Event{Type: EventPlayerList, Data: room.PlayerList()})
}

// runTicker 房間專屬的模擬迴圈
//
// 單一 goroutine 消費計時器，同一房間的 tick 天然不重疊。
func (e *Engine) runTicker(room *Room, stop <-chan struct{}) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.tick(room, e.now())
		}
	}
}

// tick 推進一個模擬週期
//
// 相位順序固定：玩家移動、玩家子彈、敵方子彈、機器人射擊、
// 機器人移動、計分、終局判定。每個相位獨立接受 recover 保護，
// 一個相位的 panic 只犧牲該相位的本週期，不拖垮迴圈。
func (e *Engine) tick(room *Room, now time.Time) {
	st := room.State
	st.simMu.Lock()
	defer st.simMu.Unlock()

	if !st.started || st.over || st.paused {
		return
	}

	dt := now.Sub(st.lastTick).Seconds()
	st.lastTick = now
	if dt <= 0 {
		return
	}

	e.phase(room, "move_players", func() { e.movePlayers(room, st, dt) })
	e.phase(room, "player_bullets", func() { e.advancePlayerBullets(room, st, dt) })
	e.phase(room, "enemy_bullets", func() { e.advanceEnemyBullets(room, st, dt) })
	e.phase(room, "bots_fire", func() { e.botsFire(room, st, now) })
	e.phase(room, "move_bots", func() { e.moveBots(room, st, dt) })

	st.score += dt
	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventScoreUpdated,
		Data: ScoreData{Score: st.score},
	})

	e.phase(room, "game_over", func() { e.checkGameOverLocked(room, st) })
}

// phase 以 recover 保護執行一個模擬相位
func (e *Engine) phase(room *Room, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("模擬相位 panic",
				slog.String("room_name", room.Name),
				slog.String("phase", name),
				slog.Any("panic", r))
		}
	}()
	fn()
}

// movePlayers 依按住的方向鍵積分玩家位置
func (e *Engine) movePlayers(room *Room, st *RoomState, dt float64) {
	st.Players.Range(func(id string, p *Player) bool {
		if !p.Alive() {
			return true
		}
		dir, ok := st.MoveVector(id).Normalized()
		if !ok {
			return true
		}
		p.Pos = p.Pos.Add(dir.Scale(e.cfg.PlayerSpeed * dt)).Clamped(e.cfg.MapWidth, e.cfg.MapHeight)
		e.broadcaster.BroadcastRoom(room.Name, Event{
			Type: EventPlayerPosition,
			Data: playerData(p),
		})
		return true
	})
}

// advancePlayerBullets 積分玩家子彈並判定對機器人的命中
//
// 每發子彈至多命中一個機器人（先命中先贏），
// 擊殺立即在同一 tick 加上擊殺分。
func (e *Engine) advancePlayerBullets(room *Room, st *RoomState, dt float64) {
	hitR2 := e.cfg.BulletHitRadius * e.cfg.BulletHitRadius

	st.PlayerBullets.Range(func(id string, b *Bullet) bool {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))

		// 先判命中再判出界：貼邊的機器人在子彈穿出地圖的
		// 同一 tick 仍然要吃到這發命中
		var hit *EnemyBot
		st.Bots.Range(func(_ string, bot *EnemyBot) bool {
			if DistanceSquared(b.Pos, bot.Pos) <= hitR2 {
				hit = bot
				return false
			}
			return true
		})

		if hit == nil {
			if e.outOfBounds(b.Pos) {
				st.PlayerBullets.Delete(id)
				e.broadcaster.BroadcastRoom(room.Name, Event{
					Type: EventBulletRemoved,
					Data: bulletData(b),
				})
				return true
			}
			e.broadcaster.BroadcastRoom(room.Name, Event{
				Type: EventBulletUpdated,
				Data: bulletData(b),
			})
			return true
		}

		st.PlayerBullets.Delete(id)
		e.broadcaster.BroadcastRoom(room.Name, Event{
			Type: EventBulletRemoved,
			Data: bulletData(b),
		})

		hit.Health -= e.cfg.PlayerBulletDamage
		if hit.Health > 0 {
			e.broadcaster.BroadcastRoom(room.Name, Event{
				Type: EventBotHit,
				Data: botData(hit),
			})
			return true
		}

		st.Bots.Delete(hit.ID)
		st.score += e.cfg.ScoreKillBonus
		e.broadcaster.BroadcastRoom(room.Name, Event{
			Type: EventBotDied,
			Data: botData(hit),
		})
		return true
	})
}

// advanceEnemyBullets 積分敵方子彈並判定對玩家的命中
//
// 只有存活的玩家會被命中，死亡事件只在存活轉為死亡的
// 那一刻發出一次。
func (e *Engine) advanceEnemyBullets(room *Room, st *RoomState, dt float64) {
	hitR2 := e.cfg.BulletHitRadius * e.cfg.BulletHitRadius

	st.BotBullets.Range(func(id string, b *EnemyBullet) bool {
		b.Age += dt
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))

		// 與玩家子彈同理：先判命中再判出界
		var hit *Player
		st.Players.Range(func(_ string, p *Player) bool {
			if p.Alive() && DistanceSquared(b.Pos, p.Pos) <= hitR2 {
				hit = p
				return false
			}
			return true
		})

		if hit == nil {
			if e.outOfBounds(b.Pos) {
				st.BotBullets.Delete(id)
				e.broadcaster.BroadcastRoom(room.Name, Event{
					Type: EventEnemyBulletRemoved,
					Data: enemyBulletData(b, ""),
				})
				return true
			}
			e.broadcaster.BroadcastRoom(room.Name, Event{
				Type: EventEnemyBulletUpdated,
				Data: enemyBulletData(b, ""),
			})
			return true
		}

		st.BotBullets.Delete(id)
		e.broadcaster.BroadcastRoom(room.Name, Event{
			Type: EventEnemyBulletRemoved,
			Data: enemyBulletData(b, ""),
		})

		hit.Health -= e.cfg.EnemyBulletDamage
		e.broadcaster.BroadcastRoom(room.Name, Event{
			Type: EventPlayerHit,
			Data: playerData(hit),
		})
		if !hit.Alive() {
			e.broadcaster.BroadcastRoom(room.Name, Event{
				Type: EventPlayerDied,
				Data: playerData(hit),
			})
			e.saveResult(room.Name, hit.Name, st.score)
		}
		return true
	})
}

// botsFire 到達射擊間隔的機器人依自身風格產彈
func (e *Engine) botsFire(room *Room, st *RoomState, now time.Time) {
	st.Bots.Range(func(_ string, bot *EnemyBot) bool {
		if now.Sub(bot.LastShot) < e.cfg.BotFireInterval {
			return true
		}

		target := e.nearestLivingPlayer(st, bot.Pos)
		if target == nil {
			return true
		}
		bot.LastShot = now

		// 瞄準向量；機器人與目標重疊時退化為垂直向下
		aim, ok := target.Pos.Sub(bot.Pos).Normalized()
		if !ok {
			aim = Vec2{X: 0, Y: 1}
		}

		switch bot.Style {
		case StyleSpread:
			for _, angle := range []float64{-e.cfg.SpreadAngle, 0, e.cfg.SpreadAngle} {
				e.spawnEnemyBullet(room, st, bot, aim.Rotated(angle))
			}
		case StyleRandom:
			angle := rand.Float64() * 2 * math.Pi
			e.spawnEnemyBullet(room, st, bot, Vec2{X: math.Cos(angle), Y: math.Sin(angle)})
		default:
			e.spawnEnemyBullet(room, st, bot, aim)
		}
		return true
	})
}

// spawnEnemyBullet 從機器人位置產生一發敵方子彈並廣播
func (e *Engine) spawnEnemyBullet(room *Room, st *RoomState, bot *EnemyBot, dir Vec2) {
	b := &EnemyBullet{
		ID:           uuid.NewString(),
		ShooterBotID: bot.ID,
		Pos:          bot.Pos,
		Vel:          dir.Scale(e.cfg.EnemyBulletSpeed),
		Pattern:      PatternStraight,
	}
	st.BotBullets.Store(b.ID, b)
	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventEnemyBulletSpawned,
		Data: enemyBulletData(b, string(bot.Style)),
	})
}

// moveBots 機器人向下漂移，越過地圖底端的靜默移除（不計分）
func (e *Engine) moveBots(room *Room, st *RoomState, dt float64) {
	st.Bots.Range(func(id string, bot *EnemyBot) bool {
		bot.Pos.Y += e.cfg.BotSpeed * dt

		if e.outOfBounds(bot.Pos) {
			st.Bots.Delete(id)
			e.broadcaster.BroadcastRoom(room.Name, Event{
				Type: EventBotEscaped,
				Data: botData(bot),
			})
			return true
		}

		e.broadcaster.BroadcastRoom(room.Name, Event{
			Type: EventBotPosition,
			Data: botData(bot),
		})
		return true
	})
}

// checkGameOverLocked 全員死亡則終局
//
// 呼叫端必須持有 simMu。終局只觸發一次：停掉迴圈、
// 廣播最終分數，延遲一段時間後銷毀房間，
// 讓客戶端有機會呈現結算畫面。
func (e *Engine) checkGameOverLocked(room *Room, st *RoomState) {
	if st.over || st.Players.Len() == 0 {
		return
	}

	anyAlive := false
	st.Players.Range(func(_ string, p *Player) bool {
		if p.Alive() {
			anyAlive = true
			return false
		}
		return true
	})
	if anyAlive {
		return
	}

	st.over = true
	st.stopLocked()

	e.broadcaster.BroadcastRoom(room.Name, Event{
		Type: EventGameOver,
		Data: ScoreData{Score: st.score},
	})
	e.logger.Info("遊戲結束",
		slog.String("room_name", room.Name),
		slog.Float64("score", st.score))

	st.teardownTimer = time.AfterFunc(e.cfg.GameOverTeardownDelay, func() {
		e.teardownRoom(room)
	})
}

// teardownRoom 終局延遲後的房間銷毀
//
// 計時器觸發時房間可能已經換人：同名房間可能是清空後重建的
// 新實例，原房間也可能已經 stop_game 重開新局。只銷毀排定時
// 的那一個房間實例，且只在它仍處於終局狀態時動手。
func (e *Engine) teardownRoom(room *Room) {
	current, ok := e.registry.Room(room.Name)
	if !ok || current != room {
		return
	}
	st := room.State
	st.simMu.Lock()
	if !st.over {
		st.simMu.Unlock()
		return
	}
	st.stopLocked()
	st.simMu.Unlock()
	e.registry.RemoveRoom(room.Name)
}

// saveResult 非同步保存終局成績（盡力而為）
func (e *Engine) saveResult(roomName, playerName string, score float64) {
	if e.results == nil {
		return
	}
	result := GameResult{
		RoomName:   roomName,
		PlayerName: playerName,
		Score:      score,
		FinishedAt: e.now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.results.SaveResult(ctx, result); err != nil {
			e.logger.Warn("成績保存失敗",
				slog.String("room_name", roomName),
				slog.String("player_name", playerName),
				slog.Any("error", err))
		}
	}()
}

// nearestLivingPlayer 距離最近的存活玩家（無存活玩家回傳 nil）
func (e *Engine) nearestLivingPlayer(st *RoomState, from Vec2) *Player {
	var nearest *Player
	best := math.MaxFloat64

	st.Players.Range(func(_ string, p *Player) bool {
		if !p.Alive() {
			return true
		}
		if d := DistanceSquared(from, p.Pos); d < best {
			best = d
			nearest = p
		}
		return true
	})
	return nearest
}

// outOfBounds 位置是否在地圖之外
func (e *Engine) outOfBounds(pos Vec2) bool {
	return pos.X < 0 || pos.X > e.cfg.MapWidth || pos.Y < 0 || pos.Y > e.cfg.MapHeight
}

// snapshot 開局快照（玩家與機器人的完整狀態）
func (e *Engine) snapshot(st *RoomState) GameStartedData {
	data := GameStartedData{
		Players: make(map[string]PlayerStateData),
		Bots:    make(map[string]BotStateData),
	}
	st.Players.Range(func(id string, p *Player) bool {
		data.Players[id] = playerData(p)
		return true
	})
	st.Bots.Range(func(id string, b *EnemyBot) bool {
		data.Bots[id] = botData(b)
		return true
	})
	return data
}

func playerData(p *Player) PlayerStateData {
	return PlayerStateData{
		ConnectionID: p.ConnectionID,
		X:            p.Pos.X,
		Y:            p.Pos.Y,
		Health:       p.Health,
	}
}

func botData(b *EnemyBot) BotStateData {
	return BotStateData{
		BotID:  b.ID,
		X:      b.Pos.X,
		Y:      b.Pos.Y,
		Health: b.Health,
		Style:  string(b.Style),
	}
}

func bulletData(b *Bullet) BulletData {
	return BulletData{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		X:         b.Pos.X,
		Y:         b.Pos.Y,
		VelocityX: b.Vel.X,
		VelocityY: b.Vel.Y,
	}
}

func enemyBulletData(b *EnemyBullet, style string) EnemyBulletData {
	return EnemyBulletData{
		ID:           b.ID,
		ShooterBotID: b.ShooterBotID,
		X:            b.Pos.X,
		Y:            b.Pos.Y,
		VelocityX:    b.Vel.X,
		VelocityY:    b.Vel.Y,
		Pattern:      string(b.Pattern),
		Style:        style,
	}
}
