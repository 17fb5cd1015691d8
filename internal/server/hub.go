package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/koopa0/knights-arena/internal/game"
	apperrors "github.com/koopa0/knights-arena/pkg/errors"
)

// 系統設計問題：
//   如何把客戶端的遊戲指令送進權威引擎、把引擎事件推回所有客戶端？
//
// 核心挑戰：
//   1. 實時性：位置、子彈、命中事件每個 tick 都在產生
//   2. 連接管理：斷線等同離開房間，要觸發完整的清理
//   3. 心跳機制：檢測死連接（網絡異常、客戶端崩潰）
//   4. 慢客戶端：單一慢連接不能拖慢整個房間的廣播
//
// 設計方案：
//   ✅ WebSocket - 全雙工通信（低延遲、服務器推送）
//   ✅ Hub 模式 - 集中管理所有連接，連接 ID 由服務器分配
//   ✅ Ping/Pong 心跳 - 檢測死連接（54s/60s）
//   ✅ 緩衝 channel - 異步發送，緩衝滿直接丟（不阻塞引擎）

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	sendBufferSize = 256
)

// Command 客戶端送來的指令
type Command struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// 指令類型
const (
	CmdCreateRoom    = "create_room"
	CmdJoinRoom      = "join_room"
	CmdLeaveRoom     = "leave_room"
	CmdStartGame     = "start_game"
	CmdStopGame      = "stop_game"
	CmdTogglePause   = "toggle_pause"
	CmdPerformAction = "perform_action"
	CmdShoot         = "shoot"
	CmdReportDeath   = "report_death"
	CmdChangeLeader  = "change_leader"
	CmdPing          = "ping"
)

// ErrorData 指令拒絕的回報負載
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Hub WebSocket 連接中心
//
// 與房間註冊表的分工：Hub 只管連接（ID 分配、心跳、收發），
// 「誰在哪個房間」由註冊表的反向索引回答。廣播時先問註冊表
// 要名冊，再對名冊上的每個連接 ID 送出 — 不在這裡重複維護
// 房間到連接的映射。
type Hub struct {
	registry *game.Registry
	engine   *game.Engine
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]*Connection // connectionID -> Connection
}

// Connection 一條 WebSocket 連接
type Connection struct {
	ID        string
	Conn      *websocket.Conn
	Send      chan []byte
	Hub       *Hub
	closeOnce sync.Once
}

// NewHub 創建 Hub
//
// 引擎與 Hub 互相依賴（引擎廣播事件、Hub 轉發指令），
// 先建 Hub 再用 Bind 接上引擎。
func NewHub(registry *game.Registry, logger *slog.Logger) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// 在生產環境應該檢查來源
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[string]*Connection),
	}
}

// Bind 接上引擎（必須在 ServeWS 之前呼叫）
func (hub *Hub) Bind(engine *game.Engine) {
	hub.engine = engine
}

// ServeWS 處理 WebSocket 連接
//
// 連接 ID 由服務器分配並在第一個事件中告知客戶端，
// 之後所有指令都以這個 ID 作為玩家身份。
func (hub *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("升級 WebSocket 失敗", "error", err)
		return
	}

	connection := &Connection{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
		Hub:  hub,
	}

	hub.register(connection)

	go connection.writePump()
	go connection.readPump()

	hub.SendTo(connection.ID, game.Event{
		Type: "connected",
		Data: map[string]string{"connection_id": connection.ID},
	})

	hub.logger.Info("WebSocket 連接建立", "connection_id", connection.ID)
}

// register 註冊連接
func (hub *Hub) register(conn *Connection) {
	hub.mu.Lock()
	hub.conns[conn.ID] = conn
	hub.mu.Unlock()
}

// unregister 取消註冊連接
func (hub *Hub) unregister(conn *Connection) {
	hub.mu.Lock()
	if actual, exists := hub.conns[conn.ID]; exists && actual == conn {
		delete(hub.conns, conn.ID)
		conn.closeOnce.Do(func() {
			close(conn.Send)
		})
	}
	hub.mu.Unlock()
}

// BroadcastRoom 廣播事件給房間的所有連接
//
// 名冊來自註冊表，離開房間的連接自然收不到後續事件。
func (hub *Hub) BroadcastRoom(roomName string, event game.Event) {
	room, ok := hub.registry.Room(roomName)
	if !ok {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		hub.logger.Error("序列化事件失敗", "error", err, "event", event.Type)
		return
	}

	memberIDs := room.MemberIDs()

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for _, id := range memberIDs {
		conn, exists := hub.conns[id]
		if !exists {
			continue
		}
		select {
		case conn.Send <- message:
		default:
			// 緩衝區滿就丟，慢客戶端不能拖慢整個房間
			hub.logger.Warn("連接緩衝區滿",
				"room_name", roomName,
				"connection_id", id,
				"event", event.Type)
		}
	}
}

// SendTo 只發給單一連接
func (hub *Hub) SendTo(connectionID string, event game.Event) {
	message, err := json.Marshal(event)
	if err != nil {
		hub.logger.Error("序列化事件失敗", "error", err, "event", event.Type)
		return
	}

	hub.mu.RLock()
	conn, exists := hub.conns[connectionID]
	hub.mu.RUnlock()
	if !exists {
		return
	}

	select {
	case conn.Send <- message:
	default:
		hub.logger.Warn("連接緩衝區滿",
			"connection_id", connectionID,
			"event", event.Type)
	}
}

// ConnectionCount 當前連接數
func (hub *Hub) ConnectionCount() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.conns)
}

// Stop 關閉所有連接
func (hub *Hub) Stop() {
	hub.mu.Lock()
	for _, conn := range hub.conns {
		conn.closeOnce.Do(func() {
			close(conn.Send)
		})
		conn.Conn.Close()
	}
	hub.conns = make(map[string]*Connection)
	hub.mu.Unlock()

	hub.logger.Info("WebSocket Hub 已停止")
}

// readPump 讀取客戶端指令
//
// 心跳機制（讀取端）：60 秒內沒有任何消息（包括 Pong）就關閉連接，
// 配合 writePump 的 54 秒 Ping（留 6 秒余量）。
// 讀取循環結束等同斷線：取消註冊並讓引擎執行完整的離房清理。
func (c *Connection) readPump() {
	defer func() {
		c.Hub.unregister(c)
		c.Conn.Close()
		c.Hub.engine.LeaveRoom(c.ID)
		c.Hub.logger.Info("WebSocket 連接關閉", "connection_id", c.ID)
	}()

	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.Hub.logger.Error("設置讀取期限失敗", "error", err)
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.Hub.logger.Error("設置讀取期限失敗", "error", err)
		}
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Error("WebSocket 讀取錯誤",
					"error", err,
					"connection_id", c.ID)
			}
			break
		}

		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

// writePump 寫入消息到客戶端
//
// 心跳機制（發送端）：54 秒的 Ping 間隔避開常見的 60 秒代理超時。
// 消息經由緩衝 channel 異步發送，業務邏輯永不阻塞在網絡寫入上。
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.Hub.logger.Error("設置寫入期限失敗", "error", err)
			}
			if !ok {
				// Hub 關閉了通道，優雅關閉連接
				deadline := time.Now().Add(time.Second)
				if err := c.Conn.SetWriteDeadline(deadline); err == nil {
					_ = c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				}
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			// 批量發送隊列中的消息
			n := len(c.Send)
			for i := 0; i < n; i++ {
				if err := c.Conn.WriteMessage(websocket.TextMessage, <-c.Send); err != nil {
					c.Hub.logger.Error("發送消息失敗", "error", err)
					return
				}
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.Hub.logger.Error("設置寫入期限失敗", "error", err)
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// createRoomData create_room 指令負載
type createRoomData struct {
	RoomName   string `json:"room_name"`
	PlayerName string `json:"player_name"`
	Capacity   int    `json:"capacity"`
}

// joinRoomData join_room 指令負載
type joinRoomData struct {
	RoomName   string `json:"room_name"`
	PlayerName string `json:"player_name"`
}

// actionData perform_action 指令負載
type actionData struct {
	Action string `json:"action"`
}

// changeLeaderData change_leader 指令負載
type changeLeaderData struct {
	NewLeaderID string `json:"new_leader_id"`
}

// handleMessage 解析並分派客戶端指令
//
// 指令失敗以 error 事件回報給發送者本人，不廣播；
// 高頻指令（移動、射擊）的冷卻拒絕同樣走這條路。
func (c *Connection) handleMessage(message []byte) {
	var cmd Command
	if err := json.Unmarshal(message, &cmd); err != nil {
		c.Hub.logger.Error("解析客戶端指令失敗",
			"error", err,
			"connection_id", c.ID)
		c.sendError(apperrors.New(apperrors.ErrCodeInvalidInput, "無法解析的指令"))
		return
	}

	switch cmd.Type {
	case CmdCreateRoom:
		c.handleCreateRoom(cmd.Data)
	case CmdJoinRoom:
		c.handleJoinRoom(cmd.Data)
	case CmdLeaveRoom:
		c.Hub.engine.LeaveRoom(c.ID)
	case CmdStartGame:
		c.reply(c.Hub.engine.StartGame(c.ID))
	case CmdStopGame:
		c.reply(c.Hub.engine.StopGame(c.ID))
	case CmdTogglePause:
		c.reply(c.Hub.engine.TogglePause(c.ID))
	case CmdPerformAction:
		var data actionData
		if err := json.Unmarshal(cmd.Data, &data); err != nil {
			c.sendError(apperrors.New(apperrors.ErrCodeInvalidInput, "無法解析的動作負載"))
			return
		}
		c.reply(c.Hub.engine.UpdateAction(c.ID, data.Action))
	case CmdShoot:
		c.reply(c.Hub.engine.Fire(c.ID))
	case CmdReportDeath:
		c.reply(c.Hub.engine.ReportDeath(c.ID))
	case CmdChangeLeader:
		c.handleChangeLeader(cmd.Data)
	case CmdPing:
		c.Hub.SendTo(c.ID, game.Event{Type: "pong"})
	default:
		c.Hub.logger.Debug("收到未知指令類型",
			"type", cmd.Type,
			"connection_id", c.ID)
		c.sendError(apperrors.New(apperrors.ErrCodeInvalidInput, "未知的指令類型").WithDetails(cmd.Type))
	}
}

// handleCreateRoom 創建房間並把創建者設為房主
func (c *Connection) handleCreateRoom(raw json.RawMessage) {
	var data createRoomData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.sendError(apperrors.New(apperrors.ErrCodeInvalidInput, "無法解析的創建房間負載"))
		return
	}
	if data.Capacity <= 0 {
		data.Capacity = c.Hub.engine.Config().DefaultRoomCapacity
	}

	room, err := c.Hub.registry.CreateRoom(data.RoomName, data.Capacity, c.ID, data.PlayerName)
	if err != nil {
		c.sendError(err)
		return
	}

	c.Hub.SendTo(c.ID, game.Event{
		Type: game.EventRoomCreated,
		Data: map[string]any{"room_name": room.Name, "capacity": room.Capacity},
	})
	c.Hub.BroadcastRoom(room.Name, game.Event{Type: game.EventPlayerList, Data: room.PlayerList()})
}

// handleJoinRoom 加入既有房間
func (c *Connection) handleJoinRoom(raw json.RawMessage) {
	var data joinRoomData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.sendError(apperrors.New(apperrors.ErrCodeInvalidInput, "無法解析的加入房間負載"))
		return
	}

	room, err := c.Hub.registry.AddMember(data.RoomName, c.ID, data.PlayerName)
	if err != nil {
		c.sendError(err)
		return
	}

	c.Hub.BroadcastRoom(room.Name, game.Event{
		Type: game.EventPlayerJoined,
		Data: game.MemberData{ConnectionID: c.ID, Name: data.PlayerName},
	})
	c.Hub.BroadcastRoom(room.Name, game.Event{Type: game.EventPlayerList, Data: room.PlayerList()})
}

// handleChangeLeader 轉移房主
func (c *Connection) handleChangeLeader(raw json.RawMessage) {
	var data changeLeaderData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.sendError(apperrors.New(apperrors.ErrCodeInvalidInput, "無法解析的轉移房主負載"))
		return
	}

	room, err := c.Hub.registry.ChangeLeader(c.ID, data.NewLeaderID)
	if err != nil {
		c.sendError(err)
		return
	}
	c.Hub.BroadcastRoom(room.Name, game.Event{Type: game.EventPlayerList, Data: room.PlayerList()})
}

// reply 有錯誤才回報，成功保持沉默（成功的效果由事件廣播呈現）
func (c *Connection) reply(err error) {
	if err != nil {
		c.sendError(err)
	}
}

// sendError 把錯誤以事件形式回報給發送者
func (c *Connection) sendError(err error) {
	c.Hub.SendTo(c.ID, game.Event{
		Type: game.EventError,
		Data: ErrorData{
			Code:    apperrors.Code(err),
			Message: err.Error(),
		},
	})
}
