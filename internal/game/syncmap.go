package game

import "sync"

// SyncMap 讀寫鎖保護的泛型並發映射
//
// 系統設計考量：
//
//	房間的實體集合（玩家、機器人、子彈）同時被兩類呼叫者存取：
//	tick 迴圈每個週期完整走訪一次，指令處理器併發插入（新玩家、新子彈）
//	或刪除（斷線）。讀多寫少，RWMutex 已足夠；Range 先在讀鎖下做快照
//	再呼叫回呼，允許回呼中安全地刪除元素。
type SyncMap[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewSyncMap 創建並發映射
func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{items: make(map[K]V)}
}

// Store 寫入
func (m *SyncMap[K, V]) Store(key K, value V) {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
}

// Load 讀取
func (m *SyncMap[K, V]) Load(key K) (V, bool) {
	m.mu.RLock()
	v, ok := m.items[key]
	m.mu.RUnlock()
	return v, ok
}

// Delete 刪除（不存在時為 no-op）
func (m *SyncMap[K, V]) Delete(key K) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

// Len 元素數量
func (m *SyncMap[K, V]) Len() int {
	m.mu.RLock()
	n := len(m.items)
	m.mu.RUnlock()
	return n
}

// Range 以快照順序走訪；回呼回傳 false 時提前結束
//
// 快照語義：走訪期間的併發插入不保證被看見，
// 併發刪除的元素可能仍被走訪到，呼叫端以 Load 再確認存在性。
func (m *SyncMap[K, V]) Range(fn func(key K, value V) bool) {
	m.mu.RLock()
	snapshot := make([]struct {
		k K
		v V
	}, 0, len(m.items))
	for k, v := range m.items {
		snapshot = append(snapshot, struct {
			k K
			v V
		}{k, v})
	}
	m.mu.RUnlock()

	for _, e := range snapshot {
		if !fn(e.k, e.v) {
			return
		}
	}
}

// Snapshot 回傳當前內容的複本
func (m *SyncMap[K, V]) Snapshot() map[K]V {
	m.mu.RLock()
	out := make(map[K]V, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	m.mu.RUnlock()
	return out
}
