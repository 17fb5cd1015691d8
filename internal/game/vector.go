package game

import "math"

// Vec2 二維向量
//
// 數值約定：
//   - 距離比較一律使用平方距離，避免不必要的開方
//   - 零向量的正規化必須在呼叫端先行分支（Normalized 回傳 ok=false），
//     不允許出現除以零
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量相減
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 純量縮放
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// LengthSquared 長度平方
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero 是否為零向量
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalized 回傳單位向量；零向量回傳 ok=false
func (v Vec2) Normalized() (Vec2, bool) {
	l2 := v.LengthSquared()
	if l2 == 0 {
		return Vec2{}, false
	}
	inv := 1 / math.Sqrt(l2)
	return Vec2{X: v.X * inv, Y: v.Y * inv}, true
}

// Rotated 繞原點旋轉（弧度）
func (v Vec2) Rotated(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Clamped 夾進 [0,w] x [0,h] 的地圖範圍
func (v Vec2) Clamped(w, h float64) Vec2 {
	return Vec2{
		X: math.Min(math.Max(v.X, 0), w),
		Y: math.Min(math.Max(v.Y, 0), h),
	}
}

// DistanceSquared 兩點間的平方距離
func DistanceSquared(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
