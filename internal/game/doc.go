// Package game 實現多人射擊遊戲的核心模擬引擎。
//
// 系統設計問題：
//
//	如何在一個行程內同時運行多個互相隔離的即時對戰房間，
//	並在網路指令與固定頻率的模擬更新併發修改狀態時保持正確？
//
// 核心挑戰：
//  1. 調度：每個房間有獨立的時鐘（tick 計時器）與獨立的機器人生成器
//  2. 連續物理：玩家移動、子彈飛行、碰撞偵測都以 wall-clock delta 積分
//  3. 併發控制：指令處理器（加入、移動、射擊）與 tick 迴圈共享同一份房間狀態
//  4. 生命週期：暫停/恢復必須不影響任何冷卻與間隔（時間戳平移）
//
// 設計方案：
//
//	✅ 每房間一個 goroutine + time.Ticker — 同房間的 tick 永不重疊
//	✅ 泛型並發映射（快照式遍歷，遍歷中可安全刪除）— 實體集合低競爭讀寫
//	✅ 每房間模擬鎖 — 指令突變與 tick 之間的最小臨界區
//	✅ 動作集合獨立互斥鎖 — 按鍵狀態是唯一的雙寫熱點，單獨保護
//	✅ 顯式註冊表（正向 + 反向索引）— 取代全域可變狀態與線性掃描
//
// 分層：
//   - Registry / Room：房間生命週期與成員名冊
//   - RoomState：單一房間的可變模擬快照
//   - Engine：tick 生命週期與各子階段（移動、子彈、AI、計分、終局判定）
//   - Spawner：每房間的背景機器人生成任務
//
// 傳輸層與持久化層是外部協作者：Engine 透過 Broadcaster 介面發出事件，
// 透過 ResultStore 介面寫入終局結果，兩者皆為 fire-and-forget。
package game
