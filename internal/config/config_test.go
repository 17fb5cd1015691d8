package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/knights-arena/internal/config"
)

// TestDefault 測試預設配置
func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Redis.Enabled, "持久化預設關閉")
	assert.False(t, cfg.Postgres.Enabled, "持久化預設關閉")
	assert.Equal(t, "info", cfg.Log.Level)

	// 遊戲參數來自引擎的預設
	assert.Equal(t, 25*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, 640.0, cfg.Game.MapWidth)
	assert.Equal(t, 960.0, cfg.Game.MapHeight)
	assert.Equal(t, 4, cfg.Game.DefaultRoomCapacity)

	require.NoError(t, cfg.Validate())
}

// TestLoad 測試配置載入
func TestLoad(t *testing.T) {
	t.Run("檔案不存在時使用預設", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	t.Run("檔案覆蓋部分欄位", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
server:
  port: 9090
redis:
  enabled: true
  addr: "redis.internal:6379"
game:
  max_bots: 12
  tick_interval: 50ms
log:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
		assert.Equal(t, 12, cfg.Game.MaxBots)
		assert.Equal(t, 50*time.Millisecond, cfg.Game.TickInterval)
		assert.Equal(t, "debug", cfg.Log.Level)

		// 未覆蓋的欄位保持預設
		assert.Equal(t, 640.0, cfg.Game.MapWidth)
		assert.Equal(t, "postgres", cfg.Postgres.User)
	})

	t.Run("非法YAML返回錯誤", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("非法配置值被驗證攔下", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 99999\n"), 0o644))

		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

// TestValidate 測試配置驗證
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr bool
	}{
		{
			name:    "預設配置合法",
			mutate:  func(cfg *config.Config) {},
			wantErr: false,
		},
		{
			name:    "埠號為零",
			mutate:  func(cfg *config.Config) { cfg.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "tick間隔為零",
			mutate:  func(cfg *config.Config) { cfg.Game.TickInterval = 0 },
			wantErr: true,
		},
		{
			name:    "地圖寬度為負",
			mutate:  func(cfg *config.Config) { cfg.Game.MapWidth = -1 },
			wantErr: true,
		},
		{
			name:    "機器人上限為負",
			mutate:  func(cfg *config.Config) { cfg.Game.MaxBots = -1 },
			wantErr: true,
		},
		{
			name:    "房間容量為零",
			mutate:  func(cfg *config.Config) { cfg.Game.DefaultRoomCapacity = 0 },
			wantErr: true,
		},
		{
			name:    "機器人上限為零是合法的",
			mutate:  func(cfg *config.Config) { cfg.Game.MaxBots = 0 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestPostgresDSN 測試連線字串生成
func TestPostgresDSN(t *testing.T) {
	t.Run("由配置組裝", func(t *testing.T) {
		cfg := config.Default()
		cfg.Postgres.Host = "db.internal"
		cfg.Postgres.Port = 5433
		cfg.Postgres.Password = "secret"

		dsn := cfg.PostgresDSN()
		assert.Contains(t, dsn, "host=db.internal")
		assert.Contains(t, dsn, "port=5433")
		assert.Contains(t, dsn, "password=secret")
		assert.Contains(t, dsn, "dbname=knights")
	})

	t.Run("DATABASE_URL優先", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://override:pw@elsewhere:5432/other")

		cfg := config.Default()
		assert.Equal(t, "postgres://override:pw@elsewhere:5432/other", cfg.PostgresDSN())
		assert.Equal(t, "postgres://override:pw@elsewhere:5432/other", cfg.MigrationURL())
	})

	t.Run("遷移URL格式", func(t *testing.T) {
		cfg := config.Default()
		cfg.Postgres.Password = "pw"

		assert.Equal(t, "postgres://postgres:pw@localhost:5432/knights?sslmode=disable", cfg.MigrationURL())
	})
}
