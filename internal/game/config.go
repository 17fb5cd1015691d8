package game

import "time"

// Config 遊戲規則配置
//
// 所有地圖邊界、速度、傷害、間隔都集中在這裡，
// 而不是散落在各處的硬編碼常數。預設值來自 DefaultConfig，
// 可由 YAML 配置覆蓋。
type Config struct {
	// 地圖
	MapWidth  float64 `yaml:"map_width"`
	MapHeight float64 `yaml:"map_height"`

	// 玩家
	PlayerSpeed     float64 `yaml:"player_speed"`      // 像素/秒
	PlayerMaxHealth int     `yaml:"player_max_health"`
	PlayerSpawnX    float64 `yaml:"player_spawn_x"`
	PlayerSpawnY    float64 `yaml:"player_spawn_y"`

	// 機器人
	BotSpeed         float64       `yaml:"bot_speed"` // 向下漂移，像素/秒
	BotMaxHealth     int           `yaml:"bot_max_health"`
	MaxBots          int           `yaml:"max_bots"`         // 單一房間的數量上限
	BotSpawnMargin   float64       `yaml:"bot_spawn_margin"` // 生成點距離左右邊界的距離
	BotSpawnInterval time.Duration `yaml:"bot_spawn_interval"`
	BotFireInterval  time.Duration `yaml:"bot_fire_interval"`

	// 子彈
	BulletHitRadius    float64 `yaml:"bullet_hit_radius"` // 圓-圓碰撞的合併半徑
	PlayerBulletSpeed  float64 `yaml:"player_bullet_speed"`
	PlayerBulletDamage int     `yaml:"player_bullet_damage"`
	EnemyBulletSpeed   float64 `yaml:"enemy_bullet_speed"`
	EnemyBulletDamage  int     `yaml:"enemy_bullet_damage"`
	SpreadAngle        float64 `yaml:"spread_angle"` // 扇形射擊的偏移角（弧度）

	// 節奏
	TickInterval          time.Duration `yaml:"tick_interval"`
	ShotCooldown          time.Duration `yaml:"shot_cooldown"`
	GameOverTeardownDelay time.Duration `yaml:"game_over_teardown_delay"`

	// 計分
	ScoreKillBonus float64 `yaml:"score_kill_bonus"`

	// 房間
	DefaultRoomCapacity int `yaml:"default_room_capacity"`
}

// DefaultConfig 返回預設遊戲配置
//
// 容量規劃：
//   - 640x960 的直向地圖，40 Hz 的模擬頻率
//   - 單房間最多 8 個機器人、4 名玩家 — 碰撞偵測用暴力兩兩比對即可，
//     不需要空間分割
func DefaultConfig() Config {
	return Config{
		MapWidth:  640,
		MapHeight: 960,

		PlayerSpeed:     200,
		PlayerMaxHealth: 100,
		PlayerSpawnX:    320,
		PlayerSpawnY:    880,

		BotSpeed:         15,
		BotMaxHealth:     100,
		MaxBots:          8,
		BotSpawnMargin:   50,
		BotSpawnInterval: 5 * time.Second,
		BotFireInterval:  2 * time.Second,

		BulletHitRadius:    20,
		PlayerBulletSpeed:  300,
		PlayerBulletDamage: 20,
		EnemyBulletSpeed:   150,
		EnemyBulletDamage:  10,
		SpreadAngle:        0.26, // 約 15 度

		TickInterval:          25 * time.Millisecond,
		ShotCooldown:          500 * time.Millisecond,
		GameOverTeardownDelay: 10 * time.Second,

		ScoreKillBonus: 10,

		DefaultRoomCapacity: 4,
	}
}
