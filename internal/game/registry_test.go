package game_test

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/knights-arena/internal/game"
	apperrors "github.com/koopa0/knights-arena/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRegistry_CreateRoom 測試創建房間
func TestRegistry_CreateRoom(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(reg *game.Registry)
		roomName string
		capacity int
		wantErr  error
		validate func(t *testing.T, reg *game.Registry, room *game.Room)
	}{
		{
			name:     "creator becomes leader",
			roomName: "arena-1",
			capacity: 4,
			validate: func(t *testing.T, reg *game.Registry, room *game.Room) {
				assert.Equal(t, "arena-1", room.Name)
				assert.Equal(t, 4, room.Capacity)
				assert.Equal(t, "conn-1", room.Leader())
				assert.Equal(t, 1, room.MemberCount())

				found, ok := reg.RoomOf("conn-1")
				require.True(t, ok)
				assert.Same(t, room, found)
			},
		},
		{
			name: "duplicate name rejected",
			setup: func(reg *game.Registry) {
				_, err := reg.CreateRoom("arena-1", 4, "other", "別人")
				require.NoError(t, err)
			},
			roomName: "arena-1",
			capacity: 4,
			wantErr:  apperrors.ErrRoomExists,
		},
		{
			name:     "empty name rejected",
			roomName: "",
			capacity: 4,
			wantErr:  apperrors.New(apperrors.ErrCodeInvalidInput, ""),
		},
		{
			name:     "zero capacity rejected",
			roomName: "arena-2",
			capacity: 0,
			wantErr:  apperrors.New(apperrors.ErrCodeInvalidInput, ""),
		},
		{
			name: "creator already in another room",
			setup: func(reg *game.Registry) {
				_, err := reg.CreateRoom("elsewhere", 4, "conn-1", "玩家一")
				require.NoError(t, err)
			},
			roomName: "arena-3",
			capacity: 4,
			wantErr:  apperrors.New(apperrors.ErrCodeInvalidState, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := game.NewRegistry(testLogger())
			if tt.setup != nil {
				tt.setup(reg)
			}

			room, err := reg.CreateRoom(tt.roomName, tt.capacity, "conn-1", "玩家一")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, apperrors.Code(tt.wantErr), apperrors.Code(err))
				return
			}
			require.NoError(t, err)
			tt.validate(t, reg, room)
		})
	}
}

// TestRegistry_AddMember 測試加入房間
func TestRegistry_AddMember(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(reg *game.Registry)
		roomName string
		connID   string
		wantErr  error
	}{
		{
			name: "join existing room",
			setup: func(reg *game.Registry) {
				_, err := reg.CreateRoom("arena", 4, "leader", "房主")
				require.NoError(t, err)
			},
			roomName: "arena",
			connID:   "conn-2",
		},
		{
			name:     "room not found",
			roomName: "missing",
			connID:   "conn-2",
			wantErr:  apperrors.ErrRoomNotFound,
		},
		{
			name: "joining same room twice",
			setup: func(reg *game.Registry) {
				_, err := reg.CreateRoom("arena", 4, "leader", "房主")
				require.NoError(t, err)
				_, err = reg.AddMember("arena", "conn-2", "玩家二")
				require.NoError(t, err)
			},
			roomName: "arena",
			connID:   "conn-2",
			wantErr:  apperrors.ErrAlreadyMember,
		},
		{
			name: "already in another room",
			setup: func(reg *game.Registry) {
				_, err := reg.CreateRoom("arena", 4, "leader", "房主")
				require.NoError(t, err)
				_, err = reg.CreateRoom("other", 4, "conn-2", "玩家二")
				require.NoError(t, err)
			},
			roomName: "arena",
			connID:   "conn-2",
			wantErr:  apperrors.New(apperrors.ErrCodeInvalidState, ""),
		},
		{
			name: "room full",
			setup: func(reg *game.Registry) {
				_, err := reg.CreateRoom("arena", 2, "leader", "房主")
				require.NoError(t, err)
				_, err = reg.AddMember("arena", "conn-a", "甲")
				require.NoError(t, err)
			},
			roomName: "arena",
			connID:   "conn-2",
			wantErr:  apperrors.ErrRoomFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := game.NewRegistry(testLogger())
			if tt.setup != nil {
				tt.setup(reg)
			}

			room, err := reg.AddMember(tt.roomName, tt.connID, "玩家")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, apperrors.Code(tt.wantErr), apperrors.Code(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, room.HasMember(tt.connID))

			found, ok := reg.RoomOf(tt.connID)
			require.True(t, ok)
			assert.Same(t, room, found)
		})
	}
}

// TestRegistry_RemoveMember 測試離開房間與房主接任
func TestRegistry_RemoveMember(t *testing.T) {
	t.Run("leader leaves and earliest member takes over", func(t *testing.T) {
		reg := game.NewRegistry(testLogger())
		_, err := reg.CreateRoom("arena", 4, "leader", "房主")
		require.NoError(t, err)
		_, err = reg.AddMember("arena", "second", "老二")
		require.NoError(t, err)
		_, err = reg.AddMember("arena", "third", "老三")
		require.NoError(t, err)

		room, newLeader, empty := reg.RemoveMember("leader")
		require.NotNil(t, room)
		assert.Equal(t, "second", newLeader)
		assert.Equal(t, "second", room.Leader())
		assert.False(t, empty)

		_, ok := reg.RoomOf("leader")
		assert.False(t, ok)
	})

	t.Run("non-leader leaves without promotion", func(t *testing.T) {
		reg := game.NewRegistry(testLogger())
		_, err := reg.CreateRoom("arena", 4, "leader", "房主")
		require.NoError(t, err)
		_, err = reg.AddMember("arena", "second", "老二")
		require.NoError(t, err)

		room, newLeader, empty := reg.RemoveMember("second")
		require.NotNil(t, room)
		assert.Empty(t, newLeader)
		assert.Equal(t, "leader", room.Leader())
		assert.False(t, empty)
	})

	t.Run("last member leaves and room reports empty", func(t *testing.T) {
		reg := game.NewRegistry(testLogger())
		_, err := reg.CreateRoom("arena", 4, "leader", "房主")
		require.NoError(t, err)

		room, _, empty := reg.RemoveMember("leader")
		require.NotNil(t, room)
		assert.True(t, empty)
		assert.Equal(t, 0, room.MemberCount())
	})

	t.Run("unknown connection is a no-op", func(t *testing.T) {
		reg := game.NewRegistry(testLogger())
		room, newLeader, empty := reg.RemoveMember("ghost")
		assert.Nil(t, room)
		assert.Empty(t, newLeader)
		assert.False(t, empty)
	})
}

// TestRegistry_ChangeLeader 測試轉移房主
func TestRegistry_ChangeLeader(t *testing.T) {
	newRegistry := func(t *testing.T) *game.Registry {
		reg := game.NewRegistry(testLogger())
		_, err := reg.CreateRoom("arena", 4, "leader", "房主")
		require.NoError(t, err)
		_, err = reg.AddMember("arena", "second", "老二")
		require.NoError(t, err)
		return reg
	}

	t.Run("leader transfers to member", func(t *testing.T) {
		reg := newRegistry(t)
		room, err := reg.ChangeLeader("leader", "second")
		require.NoError(t, err)
		assert.Equal(t, "second", room.Leader())
	})

	t.Run("non-leader cannot transfer", func(t *testing.T) {
		reg := newRegistry(t)
		_, err := reg.ChangeLeader("second", "second")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotLeader, apperrors.Code(err))
	})

	t.Run("target must be member", func(t *testing.T) {
		reg := newRegistry(t)
		_, err := reg.ChangeLeader("leader", "outsider")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotMember, apperrors.Code(err))
	})

	t.Run("caller not in any room", func(t *testing.T) {
		reg := newRegistry(t)
		_, err := reg.ChangeLeader("ghost", "second")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotMember, apperrors.Code(err))
	})
}

// TestRegistry_RemoveRoom 測試銷毀房間
func TestRegistry_RemoveRoom(t *testing.T) {
	reg := game.NewRegistry(testLogger())
	_, err := reg.CreateRoom("arena", 4, "leader", "房主")
	require.NoError(t, err)
	_, err = reg.AddMember("arena", "second", "老二")
	require.NoError(t, err)

	reg.RemoveRoom("arena")

	_, ok := reg.Room("arena")
	assert.False(t, ok)

	// 反向索引一併清掉
	_, ok = reg.RoomOf("leader")
	assert.False(t, ok)
	_, ok = reg.RoomOf("second")
	assert.False(t, ok)

	// 冪等
	reg.RemoveRoom("arena")
}

// TestRegistry_ConcurrentAccess 測試註冊表的併發安全
func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := game.NewRegistry(testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			roomName := fmt.Sprintf("room-%d", n)
			connID := fmt.Sprintf("conn-%d", n)

			_, err := reg.CreateRoom(roomName, 4, connID, "玩家")
			require.NoError(t, err)

			_, ok := reg.RoomOf(connID)
			assert.True(t, ok)

			reg.RemoveMember(connID)
			reg.RemoveRoom(roomName)
		}(i)
	}
	wg.Wait()

	roomCount, memberCount := reg.Stats()
	assert.Zero(t, roomCount)
	assert.Zero(t, memberCount)
}
