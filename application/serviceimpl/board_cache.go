package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/ports"
	"tasktrack/domain/repositories"
	"tasktrack/pkg/logger"
)

// BoardCache per-user board list cache. A nil cache port disables it and every
// method becomes a no-op; cache errors are logged and treated as misses.
type BoardCache struct {
	cache     ports.CachePort
	boardRepo repositories.BoardRepository
	ttl       time.Duration
}

func NewBoardCache(cache ports.CachePort, boardRepo repositories.BoardRepository, ttl time.Duration) *BoardCache {
	return &BoardCache{cache: cache, boardRepo: boardRepo, ttl: ttl}
}

func boardsKey(userID uuid.UUID) string {
	return fmt.Sprintf("boards:user:%s", userID)
}

func (c *BoardCache) enabled() bool {
	return c != nil && c.cache != nil && c.ttl > 0
}

func (c *BoardCache) Get(ctx context.Context, userID uuid.UUID) ([]dto.BoardResponse, bool) {
	if !c.enabled() {
		return nil, false
	}
	var boards []dto.BoardResponse
	if err := c.cache.GetJSON(ctx, boardsKey(userID), &boards); err != nil {
		return nil, false
	}
	return boards, true
}

func (c *BoardCache) Set(ctx context.Context, userID uuid.UUID, boards []dto.BoardResponse) {
	if !c.enabled() {
		return
	}
	if err := c.cache.SetJSON(ctx, boardsKey(userID), boards, c.ttl); err != nil {
		logger.WarnContext(ctx, "Failed to cache board list", "user_id", userID, "error", err)
	}
}

func (c *BoardCache) InvalidateUsers(ctx context.Context, userIDs ...uuid.UUID) {
	if !c.enabled() || len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = boardsKey(id)
	}
	if err := c.cache.Del(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate board cache", "keys", len(keys), "error", err)
	}
}

// InvalidateBoard drops the cached list of every member of the board
func (c *BoardCache) InvalidateBoard(ctx context.Context, boardID uuid.UUID) {
	if !c.enabled() {
		return
	}
	members, err := c.boardRepo.MemberIDs(ctx, boardID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load board members for cache invalidation", "board_id", boardID, "error", err)
		return
	}
	c.InvalidateUsers(ctx, members...)
}
