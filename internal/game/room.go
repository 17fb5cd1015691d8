package game

import (
	"sync"
	"time"

	apperrors "github.com/koopa0/knights-arena/pkg/errors"
)

// Room 一場對戰的隔離實例
//
// 名稱是唯一鍵。名冊按加入順序排列（房主離開時由最早加入的
// 剩餘成員接任），恰好擁有一份 RoomState。名冊清空時立即銷毀，
// 終局後延遲一段時間銷毀（讓客戶端觀察到最終狀態）。
type Room struct {
	Name      string
	Capacity  int
	CreatedAt time.Time

	State *RoomState

	mu       sync.RWMutex
	order    []string          // 加入順序
	members  map[string]string // connectionID -> 顯示名稱
	leaderID string
	inMatch  bool // 名冊封閉中（開局到回大廳之間）
}

// NewRoom 創建房間
func NewRoom(name string, capacity int) *Room {
	return &Room{
		Name:      name,
		Capacity:  capacity,
		CreatedAt: time.Now(),
		State:     NewRoomState(),
		members:   make(map[string]string),
	}
}

// AddMember 加入成員
//
// 狀態機驗證：已開局的房間不允許加入；
// 首位成員自動成為房主。開局閘門與 BeginMatch 同在 r.mu 下判定，
// 與開局搶跑的加入要麼趕在快照之前入冊、要麼整個被拒，
// 不會出現在冊卻沒有玩家實體的成員。
func (r *Room) AddMember(connectionID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inMatch {
		return apperrors.ErrGameStarted
	}
	if _, exists := r.members[connectionID]; exists {
		return apperrors.ErrAlreadyMember
	}
	if len(r.members) >= r.Capacity {
		return apperrors.ErrRoomFull
	}

	r.members[connectionID] = displayName
	r.order = append(r.order, connectionID)
	if r.leaderID == "" {
		r.leaderID = connectionID
	}
	return nil
}

// RemoveMember 移除成員
//
// 冪等：移除非成員是 no-op。房主離開時由加入順序最早的
// 剩餘成員接任；回傳新房主（無變更時為空字串）與名冊是否已清空。
func (r *Room) RemoveMember(connectionID string) (newLeader string, removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[connectionID]; !exists {
		return "", false, len(r.members) == 0
	}

	delete(r.members, connectionID)
	for i, id := range r.order {
		if id == connectionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.leaderID == connectionID {
		r.leaderID = ""
		if len(r.order) > 0 {
			r.leaderID = r.order[0]
			newLeader = r.leaderID
		}
	}

	return newLeader, true, len(r.members) == 0
}

// BeginMatch 封閉名冊並回傳開局快照
//
// 設閘與快照在同一個臨界區完成：之後到達的 AddMember
// 一律被拒，快照裡的每位成員都會被建立玩家實體。
func (r *Room) BeginMatch() []MemberData {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inMatch = true
	out := make([]MemberData, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, MemberData{ConnectionID: id, Name: r.members[id]})
	}
	return out
}

// EndMatch 重新開放名冊（回到大廳）
func (r *Room) EndMatch() {
	r.mu.Lock()
	r.inMatch = false
	r.mu.Unlock()
}

// ChangeLeader 轉移房主（只有現任房主可以）
func (r *Room) ChangeLeader(callerID, newLeaderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.leaderID != callerID {
		return apperrors.ErrNotLeader
	}
	if _, exists := r.members[newLeaderID]; !exists {
		return apperrors.ErrNotMember
	}

	r.leaderID = newLeaderID
	return nil
}

// Leader 現任房主的連接 ID
func (r *Room) Leader() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.leaderID
}

// HasMember 是否為房間成員
func (r *Room) HasMember(connectionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[connectionID]
	return ok
}

// DisplayName 成員的顯示名稱
func (r *Room) DisplayName(connectionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.members[connectionID]
	return name, ok
}

// MemberCount 成員數量
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// IsFull 房間是否已滿
func (r *Room) IsFull() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members) >= r.Capacity
}

// Members 按加入順序回傳名冊
func (r *Room) Members() []MemberData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]MemberData, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, MemberData{ConnectionID: id, Name: r.members[id]})
	}
	return out
}

// MemberIDs 按加入順序回傳成員連接 ID
func (r *Room) MemberIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// PlayerList 名冊事件的負載（名冊 + 房主）
func (r *Room) PlayerList() PlayerListData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]MemberData, 0, len(r.order))
	for _, id := range r.order {
		members = append(members, MemberData{ConnectionID: id, Name: r.members[id]})
	}
	return PlayerListData{Members: members, LeaderID: r.leaderID}
}
