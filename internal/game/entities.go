package game

import (
	"math/rand/v2"
	"time"
)

// Action 玩家的移動意圖（按住的方向鍵）
type Action string

const (
	ActionMoveUp    Action = "MoveUp"
	ActionMoveDown  Action = "MoveDown"
	ActionMoveLeft  Action = "MoveLeft"
	ActionMoveRight Action = "MoveRight"
)

// unitVector 各方向的單位向量（螢幕座標，Y 向下為正）
func (a Action) unitVector() Vec2 {
	switch a {
	case ActionMoveUp:
		return Vec2{X: 0, Y: -1}
	case ActionMoveDown:
		return Vec2{X: 0, Y: 1}
	case ActionMoveLeft:
		return Vec2{X: -1, Y: 0}
	case ActionMoveRight:
		return Vec2{X: 1, Y: 0}
	}
	return Vec2{}
}

// ParseAction 解析線上協議的動作字串
//
// "MoveUp" 表示按下，"StopMoveUp" 表示放開；
// 回傳方向、是否按下、是否為合法動作。
func ParseAction(s string) (Action, bool, bool) {
	pressed := true
	if len(s) > 4 && s[:4] == "Stop" {
		pressed = false
		s = s[4:]
	}
	switch Action(s) {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight:
		return Action(s), pressed, true
	}
	return "", false, false
}

// ShootingStyle 機器人的射擊風格
//
// 封閉的標籤變體：行為集合固定且很小，
// 用列舉加對應的產彈邏輯表示，而不是開放式子型別。
type ShootingStyle string

const (
	// StyleStraight 單發直線瞄準最近的玩家
	StyleStraight ShootingStyle = "straight"
	// StyleSpread 以目標向量為中心的三向扇形
	StyleSpread ShootingStyle = "spread"
	// StyleRandom 均勻隨機方向單發
	StyleRandom ShootingStyle = "random"
)

// shootingStyles 生成時均勻隨機抽選的候選集合
var shootingStyles = []ShootingStyle{StyleStraight, StyleSpread, StyleRandom}

// RandomShootingStyle 均勻隨機抽選一種射擊風格
func RandomShootingStyle() ShootingStyle {
	return shootingStyles[rand.IntN(len(shootingStyles))]
}

// BulletPattern 敵方子彈的軌跡標籤
//
// zigzag/arc/explosive 目前只作為前向宣告的標籤記錄，
// 所有子彈一律直線積分；不為沒有依據的標籤發明運動語義。
type BulletPattern string

const (
	PatternStraight  BulletPattern = "straight"
	PatternZigzag    BulletPattern = "zigzag"
	PatternArc       BulletPattern = "arc"
	PatternExplosive BulletPattern = "explosive"
)

// Player 房間內的一名玩家
//
// 生命週期：在 StartGame 或首次輸入時惰性建立，
// 斷線或明確離開房間時移除。標記死亡（Health <= 0）後
// 仍留在名冊中，參與「全員死亡」的終局判定。
type Player struct {
	ConnectionID string
	Name         string
	Pos          Vec2
	Health       int
	LastShot     time.Time // 射擊冷卻的判定基準
}

// Alive 玩家是否存活
func (p *Player) Alive() bool {
	return p.Health > 0
}

// EnemyBot 伺服器控制的敵對單位
type EnemyBot struct {
	ID       string
	Pos      Vec2
	Health   int
	Style    ShootingStyle
	LastShot time.Time
}

// Bullet 玩家發射的子彈
type Bullet struct {
	ID      string
	OwnerID string // 發射者的連接 ID
	Pos     Vec2
	Vel     Vec2
}

// EnemyBullet 機器人發射的子彈
type EnemyBullet struct {
	ID           string
	ShooterBotID string
	Pos          Vec2
	Vel          Vec2
	Pattern      BulletPattern
	Age          float64 // 存活秒數累計
}
