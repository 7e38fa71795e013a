package flash

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionCookie   = "sessionid"
	sessionMaxAge   = 14 * 24 * 3600
	redisKeyPrefix  = "flash:"
	defaultRedisTTL = time.Hour
)

// RedisStore keeps notices in a redis list keyed by a session cookie.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
	secure bool
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration, secure bool) *RedisStore {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &RedisStore{client: client, ttl: ttl, secure: secure}
}

var _ Store = (*RedisStore)(nil)

func redisKey(sid string) string { return redisKeyPrefix + sid }

// sessionID returns the client's session id, issuing one when create is set.
func (s *RedisStore) sessionID(c *gin.Context, create bool) string {
	if sid, err := c.Cookie(sessionCookie); err == nil && sid != "" {
		if _, perr := uuid.Parse(sid); perr == nil {
			return sid
		}
	}
	if v, ok := c.Get(sessionCookie); ok {
		return v.(string)
	}
	if !create {
		return ""
	}
	sid := uuid.NewString()
	c.Set(sessionCookie, sid)
	c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", s.secure, true)
	return sid
}

func (s *RedisStore) Add(c *gin.Context, n Notice) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}
	ctx := c.Request.Context()
	key := redisKey(s.sessionID(c, true))

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, raw)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push notice: %w", err)
	}
	return nil
}

func (s *RedisStore) Pop(c *gin.Context) ([]Notice, error) {
	sid := s.sessionID(c, false)
	if sid == "" {
		return nil, nil
	}
	ctx := c.Request.Context()
	key := redisKey(sid)

	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pop notices: %w", err)
	}

	out := make([]Notice, 0, len(items.Val()))
	for _, raw := range items.Val() {
		var n Notice
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
