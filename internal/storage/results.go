// Package storage 終局成績的持久化與排行榜
//
// 系統設計問題：
//   終局成績要可靠落盤，排行榜查詢要快。
//
// 設計方案：
//   ✅ PostgreSQL - 成績的事實來源（append-only 明細表）
//   ✅ Redis ZSET - 排行榜鏡像（ZADD GT 只保留每人最高分）
//   ✅ 降級模式 - Redis 不可用時排行榜退回 PostgreSQL 聚合查詢
//
// 寫入順序：先 PostgreSQL 後 Redis。鏡像寫失敗只記日誌，
// 下次查詢自然落到 PostgreSQL，資料不會丟。
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/koopa0/knights-arena/internal/game"
)

// leaderboardKey 排行榜的 ZSET 鍵
const leaderboardKey = "knights:leaderboard"

// Entry 排行榜的一列
type Entry struct {
	PlayerName string  `json:"player_name"`
	Score      float64 `json:"score"`
}

// Store 成績儲存
type Store struct {
	pool   *pgxpool.Pool
	rdb    *redis.Client
	logger *slog.Logger
}

// NewStore 創建成績儲存
//
// rdb 可為 nil，此時排行榜一律走 PostgreSQL。
func NewStore(pool *pgxpool.Pool, rdb *redis.Client, logger *slog.Logger) *Store {
	return &Store{
		pool:   pool,
		rdb:    rdb,
		logger: logger,
	}
}

// SaveResult 保存一筆終局成績
//
// PostgreSQL 寫入成功即視為成功；排行榜鏡像盡力而為。
func (s *Store) SaveResult(ctx context.Context, result game.GameResult) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO game_results (room_name, player_name, score, finished_at)
		 VALUES ($1, $2, $3, $4)`,
		result.RoomName, result.PlayerName, result.Score, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("保存成績失敗: %w", err)
	}

	s.mirrorToLeaderboard(ctx, result)

	s.logger.Info("成績已保存",
		"room_name", result.RoomName,
		"player_name", result.PlayerName,
		"score", result.Score)
	return nil
}

// mirrorToLeaderboard 把成績鏡像進 Redis 排行榜
//
// ZADD GT：只在新分數更高時更新，每位玩家保留歷史最高分。
func (s *Store) mirrorToLeaderboard(ctx context.Context, result game.GameResult) {
	if s.rdb == nil {
		return
	}

	err := s.rdb.ZAddGT(ctx, leaderboardKey, redis.Z{
		Score:  result.Score,
		Member: result.PlayerName,
	}).Err()
	if err != nil {
		s.logger.Warn("排行榜鏡像寫入失敗",
			"player_name", result.PlayerName,
			"error", err)
	}
}

// TopResults 排行榜前 N 名（分數由高到低）
//
// Redis 優先；Redis 不可用或鏡像為空時退回 PostgreSQL 聚合。
func (s *Store) TopResults(ctx context.Context, limit int) ([]Entry, error) {
	if s.rdb != nil {
		entries, err := s.topFromRedis(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			s.logger.Warn("排行榜讀取 Redis 失敗，退回 PostgreSQL", "error", err)
		}
	}
	return s.topFromPostgres(ctx, limit)
}

func (s *Store) topFromRedis(ctx context.Context, limit int) ([]Entry, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("讀取排行榜失敗: %w", err)
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		name, _ := z.Member.(string)
		entries = append(entries, Entry{PlayerName: name, Score: z.Score})
	}
	return entries, nil
}

func (s *Store) topFromPostgres(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT player_name, MAX(score) AS best_score
		 FROM game_results
		 GROUP BY player_name
		 ORDER BY best_score DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("查詢排行榜失敗: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerName, &e.Score); err != nil {
			return nil, fmt.Errorf("讀取排行榜結果失敗: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ResultsForRoom 一個房間的歷史成績（新到舊）
func (s *Store) ResultsForRoom(ctx context.Context, roomName string, limit int) ([]game.GameResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT room_name, player_name, score, finished_at
		 FROM game_results
		 WHERE room_name = $1
		 ORDER BY finished_at DESC
		 LIMIT $2`, roomName, limit)
	if err != nil {
		return nil, fmt.Errorf("查詢房間成績失敗: %w", err)
	}
	defer rows.Close()

	var results []game.GameResult
	for rows.Next() {
		var r game.GameResult
		var finishedAt time.Time
		if err := rows.Scan(&r.RoomName, &r.PlayerName, &r.Score, &finishedAt); err != nil {
			return nil, fmt.Errorf("讀取房間成績失敗: %w", err)
		}
		r.FinishedAt = finishedAt
		results = append(results, r)
	}
	return results, rows.Err()
}
