package game

// Event 引擎對外發出的事件
//
// 事件驅動架構：引擎只負責產生事件，
// 由傳輸層（Broadcaster 的實作）決定如何送達客戶端。
// 發送是 fire-and-forget — 引擎不等待投遞確認。
type Event struct {
	Type string `json:"event"`
	Data any    `json:"data"`
}

// 事件類型
const (
	EventRoomCreated = "room_created"
	EventError       = "error"

	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventPlayerList   = "player_list"

	EventGameStarted = "game_started"
	EventGamePaused  = "game_paused"
	EventGameStopped = "game_stopped"
	EventGameOver    = "game_over"

	EventPlayerPosition = "player_position"
	EventPlayerHit      = "player_hit"
	EventPlayerDied     = "player_died"

	EventBotAdded    = "bot_added"
	EventBotPosition = "bot_position"
	EventBotHit      = "bot_hit"
	EventBotDied     = "bot_died"
	EventBotEscaped  = "bot_escaped"

	EventBulletSpawned = "bullet_spawned"
	EventBulletUpdated = "bullet_updated"
	EventBulletRemoved = "bullet_removed"

	EventEnemyBulletSpawned = "enemy_bullet_spawned"
	EventEnemyBulletUpdated = "enemy_bullet_updated"
	EventEnemyBulletRemoved = "enemy_bullet_removed"

	EventScoreUpdated = "score_updated"
)

// PlayerStateData 玩家狀態事件負載
type PlayerStateData struct {
	ConnectionID string  `json:"connection_id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Health       int     `json:"health"`
}

// BotStateData 機器人狀態事件負載
type BotStateData struct {
	BotID  string  `json:"bot_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health int     `json:"health"`
	Style  string  `json:"shooting_style"`
}

// BulletData 玩家子彈事件負載
type BulletData struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"owner_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocity_x"`
	VelocityY float64 `json:"velocity_y"`
}

// EnemyBulletData 敵方子彈事件負載
//
// Style 讓客戶端知道這發子彈來自哪種射擊風格；
// Pattern 是前向宣告的軌跡標籤（目前一律 straight）。
type EnemyBulletData struct {
	ID           string  `json:"id"`
	ShooterBotID string  `json:"shooter_bot_id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	VelocityX    float64 `json:"velocity_x"`
	VelocityY    float64 `json:"velocity_y"`
	Pattern      string  `json:"pattern"`
	Style        string  `json:"shooting_style"`
}

// MemberData 名冊成員
type MemberData struct {
	ConnectionID string `json:"connection_id"`
	Name         string `json:"name"`
}

// PlayerListData 名冊變更事件負載
type PlayerListData struct {
	Members  []MemberData `json:"members"`
	LeaderID string       `json:"leader_id"`
}

// GamePausedData 暫停狀態變更負載
type GamePausedData struct {
	Paused bool `json:"paused"`
}

// ScoreData 分數負載（score_updated 與 game_over 共用）
type ScoreData struct {
	Score float64 `json:"score"`
}

// GameStartedData 開局快照
type GameStartedData struct {
	Players map[string]PlayerStateData `json:"players"`
	Bots    map[string]BotStateData    `json:"bots"`
}

// Broadcaster 引擎的事件出口
//
// 接受介面、回傳結構：引擎不關心傳輸層是 WebSocket、
// 長輪詢還是測試用的記錄器。實作必須是非阻塞的 —
// 引擎可能在持有房間模擬鎖時發出事件。
type Broadcaster interface {
	// BroadcastRoom 廣播事件給房間的所有連接
	BroadcastRoom(roomName string, event Event)
	// SendTo 只發給單一連接（指令拒絕回報用）
	SendTo(connectionID string, event Event)
}

// NopBroadcaster 丟棄所有事件的空實作
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastRoom(string, Event) {}
func (NopBroadcaster) SendTo(string, Event)        {}
