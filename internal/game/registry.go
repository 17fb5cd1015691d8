package game

import (
	"log/slog"
	"sort"
	"sync"

	apperrors "github.com/koopa0/knights-arena/pkg/errors"
)

// Registry 房間註冊表
//
// 系統設計問題：
// 同一個連接同時只能屬於一個房間，而斷線時我們只有連接 ID。
// 如果只維護 name -> room 的正向索引，斷線處理就要遍歷所有房間。
//
// 設計方案：
// 同時維護反向索引 connectionID -> roomName，兩個索引在同一把
// 鎖下更新，保證一致。註冊表的鎖只保護索引結構本身，
// 房間內部的名冊與模擬狀態由房間自己的鎖保護。
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	byConn map[string]string // connectionID -> roomName
	logger *slog.Logger
}

// NewRegistry 創建註冊表
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		byConn: make(map[string]string),
		logger: logger,
	}
}

// CreateRoom 創建房間，創建者自動加入並成為房主
func (reg *Registry) CreateRoom(name string, capacity int, creatorID, creatorName string) (*Room, error) {
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "房間名稱不能為空")
	}
	if capacity < 1 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "房間容量必須至少為 1")
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.rooms[name]; exists {
		return nil, apperrors.ErrRoomExists
	}
	if existing, ok := reg.byConn[creatorID]; ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidState, "連接已在房間中").
			WithDetails("room_name=" + existing)
	}

	room := NewRoom(name, capacity)
	if err := room.AddMember(creatorID, creatorName); err != nil {
		return nil, err
	}
	reg.rooms[name] = room
	reg.byConn[creatorID] = name

	reg.logger.Info("房間已創建",
		slog.String("room_name", name),
		slog.Int("capacity", capacity),
		slog.String("leader", creatorID))
	return room, nil
}

// AddMember 將連接加入指定房間
func (reg *Registry) AddMember(roomName, connectionID, displayName string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, exists := reg.rooms[roomName]
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}
	if existing, ok := reg.byConn[connectionID]; ok {
		if existing == roomName {
			return nil, apperrors.ErrAlreadyMember
		}
		return nil, apperrors.New(apperrors.ErrCodeInvalidState, "連接已在其他房間中").
			WithDetails("room_name=" + existing)
	}

	if err := room.AddMember(connectionID, displayName); err != nil {
		return nil, err
	}
	reg.byConn[connectionID] = roomName
	return room, nil
}

// RemoveMember 將連接移出它所屬的房間
//
// 冪等：不在任何房間的連接是 no-op。
// 回傳房間、新房主（若有）、名冊是否已清空。
func (reg *Registry) RemoveMember(connectionID string) (room *Room, newLeader string, empty bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	roomName, ok := reg.byConn[connectionID]
	if !ok {
		return nil, "", false
	}
	room = reg.rooms[roomName]
	delete(reg.byConn, connectionID)
	if room == nil {
		return nil, "", false
	}

	newLeader, _, empty = room.RemoveMember(connectionID)
	return room, newLeader, empty
}

// RoomOf 連接所屬的房間
func (reg *Registry) RoomOf(connectionID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	roomName, ok := reg.byConn[connectionID]
	if !ok {
		return nil, false
	}
	room, exists := reg.rooms[roomName]
	return room, exists
}

// Room 按名稱查詢房間
func (reg *Registry) Room(name string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[name]
	return room, ok
}

// RemoveRoom 銷毀房間（冪等），同時清掉殘留的反向索引
func (reg *Registry) RemoveRoom(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.rooms[name]; !exists {
		return
	}
	delete(reg.rooms, name)
	for connID, roomName := range reg.byConn {
		if roomName == name {
			delete(reg.byConn, connID)
		}
	}

	reg.logger.Info("房間已銷毀", slog.String("room_name", name))
}

// ChangeLeader 轉移連接所屬房間的房主
func (reg *Registry) ChangeLeader(callerID, newLeaderID string) (*Room, error) {
	room, ok := reg.RoomOf(callerID)
	if !ok {
		return nil, apperrors.ErrNotMember
	}
	if err := room.ChangeLeader(callerID, newLeaderID); err != nil {
		return nil, err
	}
	return room, nil
}

// Rooms 按名稱排序的房間快照
func (reg *Registry) Rooms() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Stats 註冊表統計
func (reg *Registry) Stats() (roomCount, memberCount int) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms), len(reg.byConn)
}
