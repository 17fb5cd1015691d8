package game

import (
	"context"
	"sync"
	"time"
)

// RoomState 單一房間的可變模擬快照
//
// 併發模型（每房間獨立，房間之間沒有共享鎖）：
//
//  1. 實體集合（players/bots/bullets）用並發映射 — tick 每週期走訪，
//     指令處理器併發增刪（新玩家、新子彈、斷線清理）。
//
//  2. actions（按住的方向鍵集合）是唯一同時被指令處理器寫入、
//     被 tick 讀取的熱點，用獨立的互斥鎖保護最小臨界區。
//
//  3. simMu 序列化 tick 本體與會改動實體欄位的指令
//     （射擊冷卻、暫停平移、惰性建立玩家）。同一房間的 tick
//     由單一 goroutine 消費計時器，天然不重疊；simMu 補上
//     指令與 tick 之間的互斥。
//
// 不變量：任一時刻每個房間至多一個活躍的 tick 計時器、
// 至多一個活躍的生成器（stopTick / cancelSpawner 非 nil 即為活躍）。
type RoomState struct {
	Players       *SyncMap[string, *Player]
	Bots          *SyncMap[string, *EnemyBot]
	PlayerBullets *SyncMap[string, *Bullet]
	BotBullets    *SyncMap[string, *EnemyBullet]

	actionsMu sync.Mutex
	actions   map[string]map[Action]struct{}

	simMu         sync.Mutex
	score         float64
	started       bool
	paused        bool
	over          bool
	lastTick      time.Time
	lastBotSpawn  time.Time
	pauseStart    *time.Time
	stopTick      chan struct{}
	cancelSpawner context.CancelFunc
	teardownTimer *time.Timer
}

// NewRoomState 創建空白的房間狀態
func NewRoomState() *RoomState {
	return &RoomState{
		Players:       NewSyncMap[string, *Player](),
		Bots:          NewSyncMap[string, *EnemyBot](),
		PlayerBullets: NewSyncMap[string, *Bullet](),
		BotBullets:    NewSyncMap[string, *EnemyBullet](),
		actions:       make(map[string]map[Action]struct{}),
	}
}

// SetAction 更新玩家的動作集合（按下加入、放開移除）
func (s *RoomState) SetAction(connectionID string, dir Action, pressed bool) {
	s.actionsMu.Lock()
	defer s.actionsMu.Unlock()

	held, ok := s.actions[connectionID]
	if !ok {
		if !pressed {
			return
		}
		held = make(map[Action]struct{})
		s.actions[connectionID] = held
	}

	if pressed {
		held[dir] = struct{}{}
	} else {
		delete(held, dir)
	}
}

// MoveVector 將玩家按住的方向鍵合成移動向量（未正規化）
//
// 空集合回傳零向量 — 呼叫端必須先分支再正規化。
func (s *RoomState) MoveVector(connectionID string) Vec2 {
	s.actionsMu.Lock()
	defer s.actionsMu.Unlock()

	var v Vec2
	for dir := range s.actions[connectionID] {
		v = v.Add(dir.unitVector())
	}
	return v
}

// ClearActions 移除玩家的動作集合（離開房間、斷線）
func (s *RoomState) ClearActions(connectionID string) {
	s.actionsMu.Lock()
	delete(s.actions, connectionID)
	s.actionsMu.Unlock()
}

// ClearAllActions 清空所有動作集合（回到大廳）
func (s *RoomState) ClearAllActions() {
	s.actionsMu.Lock()
	s.actions = make(map[string]map[Action]struct{})
	s.actionsMu.Unlock()
}

// Score 當前分數
func (s *RoomState) Score() float64 {
	s.simMu.Lock()
	defer s.simMu.Unlock()
	return s.score
}

// Started 遊戲是否已開始
func (s *RoomState) Started() bool {
	s.simMu.Lock()
	defer s.simMu.Unlock()
	return s.started
}

// Paused 遊戲是否暫停中
func (s *RoomState) Paused() bool {
	s.simMu.Lock()
	defer s.simMu.Unlock()
	return s.paused
}

// Over 遊戲是否已結束
func (s *RoomState) Over() bool {
	s.simMu.Lock()
	defer s.simMu.Unlock()
	return s.over
}

// shiftTimestampsLocked 把所有時間敏感的時間戳向後平移 d
//
// 暫停正確性的關鍵：恢復時以暫停時長平移每一個冷卻基準
// （上次 tick、上次生成、每個玩家與機器人的上次射擊），
// 使暫停期間的 wall-clock 時間完全不計入任何冷卻與間隔。
// 呼叫端必須持有 simMu。
func (s *RoomState) shiftTimestampsLocked(d time.Duration) {
	s.lastTick = s.lastTick.Add(d)
	s.lastBotSpawn = s.lastBotSpawn.Add(d)

	s.Players.Range(func(_ string, p *Player) bool {
		p.LastShot = p.LastShot.Add(d)
		return true
	})
	s.Bots.Range(func(_ string, b *EnemyBot) bool {
		b.LastShot = b.LastShot.Add(d)
		return true
	})
}

// stopLocked 停止 tick 計時器、生成器與待觸發的銷毀計時器（冪等）
//
// 呼叫端必須持有 simMu。重複停止、停止從未啟動的房間都是 no-op。
// 銷毀計時器必須一併取消：終局排定的延遲銷毀在房間重置
// （stop_game 後重開）或提前清空時已無對象，留著會誤殺新的一局。
func (s *RoomState) stopLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
	if s.cancelSpawner != nil {
		s.cancelSpawner()
		s.cancelSpawner = nil
	}
	if s.teardownTimer != nil {
		s.teardownTimer.Stop()
		s.teardownTimer = nil
	}
}
