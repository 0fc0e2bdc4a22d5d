// Package flash stores one-shot user notifications per browser session so
// they survive a redirect. Redis backs the store when configured; otherwise
// messages live in process memory.
package flash

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"procure.GO/core/cache"
)

const (
	CookieName = "po_session"
	contextKey = "flash_sid"
	defaultTTL = 10 * time.Minute
)

// Message categories used by the templates.
const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type Store interface {
	Add(ctx context.Context, sid string, m Message) error
	Pop(ctx context.Context, sid string) ([]Message, error)
}

// NewStore returns a Redis store when client is non-nil, a memory store otherwise.
func NewStore(client *redis.Client) Store {
	if client != nil {
		return &RedisStore{client: client, ttl: defaultTTL}
	}
	return NewMemoryStore(defaultTTL)
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func redisKey(sid string) string { return "flash:" + sid }

func (s *RedisStore) Add(ctx context.Context, sid string, m Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, redisKey(sid), b)
	pipe.Expire(ctx, redisKey(sid), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Pop(ctx context.Context, sid string) ([]Message, error) {
	pipe := s.client.TxPipeline()
	rng := pipe.LRange(ctx, redisKey(sid), 0, -1)
	pipe.Del(ctx, redisKey(sid))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	out := make([]Message, 0, len(rng.Val()))
	for _, raw := range rng.Val() {
		var m Message
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.NewCache(), ttl: ttl}
}

func (s *MemoryStore) Add(_ context.Context, sid string, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, _ := s.cache.GetOrDefault(sid, []Message(nil)).([]Message)
	s.cache.Set(sid, append(msgs, m), s.ttl)
	s.cache.Purge()
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sid string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Pop(sid)
	if !ok {
		return nil, nil
	}
	return v.([]Message), nil
}

// Middleware makes sure every request carries a session id cookie.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
				sid = ck.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{Name: CookieName, Value: sid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
			}
			c.Set(contextKey, sid)
			return next(c)
		}
	}
}

func sessionID(c echo.Context) string {
	sid, _ := c.Get(contextKey).(string)
	return sid
}

// Flasher binds a Store to echo requests.
type Flasher struct {
	Store Store
}

// Add queues a message for the current session.
func (f *Flasher) Add(c echo.Context, category, text string) {
	sid := sessionID(c)
	if sid == "" {
		return
	}
	_ = f.Store.Add(c.Request().Context(), sid, Message{Category: category, Text: text})
}

// Pop returns and clears the queued messages of the current session.
func (f *Flasher) Pop(c echo.Context) []Message {
	sid := sessionID(c)
	if sid == "" {
		return nil
	}
	msgs, _ := f.Store.Pop(c.Request().Context(), sid)
	return msgs
}
