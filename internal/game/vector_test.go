package game_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/knights-arena/internal/game"
)

// TestVec2_Normalized 測試向量正規化
func TestVec2_Normalized(t *testing.T) {
	tests := []struct {
		name     string
		input    game.Vec2
		wantOK   bool
		validate func(t *testing.T, v game.Vec2)
	}{
		{
			name:   "unit vector unchanged",
			input:  game.Vec2{X: 1, Y: 0},
			wantOK: true,
			validate: func(t *testing.T, v game.Vec2) {
				assert.InDelta(t, 1, v.X, 1e-9)
				assert.InDelta(t, 0, v.Y, 1e-9)
			},
		},
		{
			name:   "diagonal normalized to unit length",
			input:  game.Vec2{X: 3, Y: 4},
			wantOK: true,
			validate: func(t *testing.T, v game.Vec2) {
				assert.InDelta(t, 0.6, v.X, 1e-9)
				assert.InDelta(t, 0.8, v.Y, 1e-9)
				assert.InDelta(t, 1, v.LengthSquared(), 1e-9)
			},
		},
		{
			name:   "zero vector reports not ok",
			input:  game.Vec2{},
			wantOK: false,
			validate: func(t *testing.T, v game.Vec2) {
				assert.True(t, v.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := tt.input.Normalized()
			require.Equal(t, tt.wantOK, ok)
			tt.validate(t, v)
		})
	}
}

// TestVec2_Rotated 測試向量旋轉
func TestVec2_Rotated(t *testing.T) {
	tests := []struct {
		name  string
		input game.Vec2
		angle float64
		want  game.Vec2
	}{
		{
			name:  "rotate quarter turn",
			input: game.Vec2{X: 1, Y: 0},
			angle: math.Pi / 2,
			want:  game.Vec2{X: 0, Y: 1},
		},
		{
			name:  "rotate half turn",
			input: game.Vec2{X: 0, Y: 1},
			angle: math.Pi,
			want:  game.Vec2{X: 0, Y: -1},
		},
		{
			name:  "zero angle unchanged",
			input: game.Vec2{X: 2, Y: 3},
			angle: 0,
			want:  game.Vec2{X: 2, Y: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Rotated(tt.angle)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

// TestVec2_Clamped 測試邊界夾制
func TestVec2_Clamped(t *testing.T) {
	tests := []struct {
		name  string
		input game.Vec2
		want  game.Vec2
	}{
		{name: "inside untouched", input: game.Vec2{X: 100, Y: 200}, want: game.Vec2{X: 100, Y: 200}},
		{name: "negative clamped to zero", input: game.Vec2{X: -5, Y: -10}, want: game.Vec2{X: 0, Y: 0}},
		{name: "overflow clamped to bounds", input: game.Vec2{X: 700, Y: 1000}, want: game.Vec2{X: 640, Y: 960}},
		{name: "mixed axes", input: game.Vec2{X: -1, Y: 1000}, want: game.Vec2{X: 0, Y: 960}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Clamped(640, 960))
		})
	}
}

// TestDistanceSquared 測試平方距離
func TestDistanceSquared(t *testing.T) {
	assert.InDelta(t, 25, game.DistanceSquared(game.Vec2{X: 0, Y: 0}, game.Vec2{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 0, game.DistanceSquared(game.Vec2{X: 7, Y: 7}, game.Vec2{X: 7, Y: 7}), 1e-9)
}

// TestParseAction 測試動作字串解析
func TestParseAction(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantDir     game.Action
		wantPressed bool
		wantValid   bool
	}{
		{name: "press up", input: "MoveUp", wantDir: game.ActionMoveUp, wantPressed: true, wantValid: true},
		{name: "release up", input: "StopMoveUp", wantDir: game.ActionMoveUp, wantPressed: false, wantValid: true},
		{name: "press left", input: "MoveLeft", wantDir: game.ActionMoveLeft, wantPressed: true, wantValid: true},
		{name: "release right", input: "StopMoveRight", wantDir: game.ActionMoveRight, wantPressed: false, wantValid: true},
		{name: "unknown action", input: "Teleport", wantValid: false},
		{name: "empty string", input: "", wantValid: false},
		{name: "bare stop prefix", input: "Stop", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, pressed, valid := game.ParseAction(tt.input)
			require.Equal(t, tt.wantValid, valid)
			if !valid {
				return
			}
			assert.Equal(t, tt.wantDir, dir)
			assert.Equal(t, tt.wantPressed, pressed)
		})
	}
}
