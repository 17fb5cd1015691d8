package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/koopa0/knights-arena/internal/game"
	"github.com/koopa0/knights-arena/internal/storage"
)

// LeaderboardSource 排行榜查詢出口
type LeaderboardSource interface {
	TopResults(ctx context.Context, limit int) ([]storage.Entry, error)
}

// Handler HTTP 請求處理器
//
// 遊戲指令全部走 WebSocket，HTTP 只承載唯讀查詢
// （房間列表、房間詳情、排行榜）與運維端點。
type Handler struct {
	registry    *game.Registry
	hub         *Hub
	leaderboard LeaderboardSource // 可為 nil（無持久化部署）
	logger      *slog.Logger
}

// NewHandler 創建 HTTP 處理器
func NewHandler(registry *game.Registry, hub *Hub, leaderboard LeaderboardSource, logger *slog.Logger) *Handler {
	return &Handler{
		registry:    registry,
		hub:         hub,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Routes 設定路由
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	// 中間件鏈
	wrap := func(handler http.HandlerFunc) http.HandlerFunc {
		return h.recoverer(h.loggerMiddleware(handler))
	}

	// 遊戲通道（不包裝 responseWriter，升級需要 http.Hijacker）
	mux.HandleFunc("GET /ws", h.recoverer(h.hub.ServeWS))

	// 唯讀查詢 API
	mux.HandleFunc("GET /api/v1/rooms", wrap(h.listRooms))
	mux.HandleFunc("GET /api/v1/rooms/{room_name}", wrap(h.getRoomDetail))
	mux.HandleFunc("GET /api/v1/leaderboard", wrap(h.getLeaderboard))

	// 健康檢查
	mux.HandleFunc("GET /health", wrap(h.health))
	mux.HandleFunc("GET /stats", wrap(h.stats))

	return mux
}

// roomSummary 房間的對外快照
type roomSummary struct {
	RoomName    string  `json:"room_name"`
	MemberCount int     `json:"member_count"`
	Capacity    int     `json:"capacity"`
	LeaderID    string  `json:"leader_id"`
	Started     bool    `json:"started"`
	Paused      bool    `json:"paused"`
	Over        bool    `json:"over"`
	Score       float64 `json:"score"`
}

func summarize(room *game.Room) roomSummary {
	return roomSummary{
		RoomName:    room.Name,
		MemberCount: room.MemberCount(),
		Capacity:    room.Capacity,
		LeaderID:    room.Leader(),
		Started:     room.State.Started(),
		Paused:      room.State.Paused(),
		Over:        room.State.Over(),
		Score:       room.State.Score(),
	}
}

// listRooms 列出房間（分頁）
func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if p := query.Get("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil && val > 0 {
			page = val
		}
	}

	limit := 20
	if l := query.Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}

	rooms := h.registry.Rooms()
	total := len(rooms)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	summaries := make([]roomSummary, 0, end-start)
	for _, room := range rooms[start:end] {
		summaries = append(summaries, summarize(room))
	}

	h.jsonResponse(w, map[string]any{
		"rooms": summaries,
		"total": total,
		"page":  page,
	}, http.StatusOK)
}

// getRoomDetail 獲取房間詳情（快照 + 名冊）
func (h *Handler) getRoomDetail(w http.ResponseWriter, r *http.Request) {
	roomName := r.PathValue("room_name")

	room, ok := h.registry.Room(roomName)
	if !ok {
		h.errorResponse(w, "房間不存在", http.StatusNotFound)
		return
	}

	h.jsonResponse(w, map[string]any{
		"room":    summarize(room),
		"members": room.Members(),
	}, http.StatusOK)
}

// getLeaderboard 排行榜（預設前 10 名）
func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.leaderboard == nil {
		h.errorResponse(w, "排行榜未啟用", http.StatusServiceUnavailable)
		return
	}

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}

	entries, err := h.leaderboard.TopResults(r.Context(), limit)
	if err != nil {
		h.logger.Error("查詢排行榜失敗", "error", err)
		h.errorResponse(w, "排行榜暫時不可用", http.StatusServiceUnavailable)
		return
	}

	h.jsonResponse(w, map[string]any{
		"entries": entries,
	}, http.StatusOK)
}

// health 健康檢查
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, map[string]any{
		"status": "healthy",
		"time":   time.Now().Unix(),
	}, http.StatusOK)
}

// stats 統計資訊
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	roomCount, memberCount := h.registry.Stats()
	h.jsonResponse(w, map[string]any{
		"rooms":       roomCount,
		"members":     memberCount,
		"connections": h.hub.ConnectionCount(),
	}, http.StatusOK)
}

// jsonResponse 返回 JSON 響應
func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("編碼 JSON 失敗", "error", err)
	}
}

// errorResponse 返回錯誤響應
func (h *Handler) errorResponse(w http.ResponseWriter, message string, status int) {
	h.jsonResponse(w, map[string]any{
		"error": message,
	}, status)
}

// loggerMiddleware 日誌中間件
func (h *Handler) loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// 包裝 ResponseWriter 以獲取狀態碼
		ww := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next(ww, r)

		h.logger.Info("HTTP 請求",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start))
	}
}

// recoverer panic 恢復中間件
func (h *Handler) recoverer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.logger.Error("處理請求時發生 panic",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)

				h.errorResponse(w, "內部伺服器錯誤", http.StatusInternalServerError)
			}
		}()

		next(w, r)
	}
}

// responseWriter 包裝 ResponseWriter 以獲取狀態碼
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
