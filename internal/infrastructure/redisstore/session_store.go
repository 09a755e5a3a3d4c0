package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/preppal/internal/domain/entity"
	"github.com/oksasatya/preppal/internal/domain/repository"
)

// Session hash fields.
const (
	fieldUserID      = "user_id"
	fieldEmail       = "email"
	fieldUsername    = "username"
	fieldLoggedIn    = "logged_in"
	fieldRecipeCount = "recipe_count"
	fieldClickCount  = "click_count"
	fieldDateOfBirth = "date_of_birth"
	fieldIngredients = "search_ingredients"
	fieldCreatedAt   = "created_at"
)

// hincrIfExists and hsetIfExists write to a session hash only while it
// exists, so an expired session is never recreated without a TTL. A missing
// key returns nil, which go-redis reports as redis.Nil.
var hincrIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return false
end
return redis.call("HINCRBY", KEYS[1], ARGV[1], ARGV[2])
`)

var hsetIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return false
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
return 1
`)

func sessionKey(id string) string {
	return "session:" + id
}

// SessionStore keeps each session as a Redis hash with an absolute expiry.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Create(ctx context.Context, sess *entity.Session, ttl time.Duration) error {
	ingredients, err := json.Marshal(nonNil(sess.SearchIngredients))
	if err != nil {
		return err
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	fields := map[string]any{
		fieldUserID:      sess.UserID,
		fieldEmail:       sess.Email,
		fieldUsername:    sess.Username,
		fieldLoggedIn:    strconv.FormatBool(sess.Authenticated),
		fieldRecipeCount: sess.RecipeCount,
		fieldClickCount:  sess.ClickCount,
		fieldDateOfBirth: sess.DateOfBirth,
		fieldIngredients: string(ingredients),
		fieldCreatedAt:   sess.CreatedAt.Format(time.RFC3339Nano),
	}
	key := sessionKey(sess.ID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	data, err := s.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(data) == 0 {
		return nil, repository.ErrNotFound
	}
	sess := &entity.Session{
		ID:          id,
		UserID:      data[fieldUserID],
		Email:       data[fieldEmail],
		Username:    data[fieldUsername],
		DateOfBirth: data[fieldDateOfBirth],
	}
	sess.Authenticated, _ = strconv.ParseBool(data[fieldLoggedIn])
	sess.RecipeCount, _ = strconv.Atoi(data[fieldRecipeCount])
	sess.ClickCount, _ = strconv.Atoi(data[fieldClickCount])
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, data[fieldCreatedAt])
	if raw := data[fieldIngredients]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &sess.SearchIngredients); err != nil {
			return nil, fmt.Errorf("decode session ingredients: %w", err)
		}
	}
	return sess, nil
}

func (s *SessionStore) IncrClicks(ctx context.Context, id string) (int, error) {
	if id == "" {
		return 0, repository.ErrNotFound
	}
	n, err := hincrIfExists.Run(ctx, s.rdb, []string{sessionKey(id)}, fieldClickCount, 1).Int()
	if errors.Is(err, redis.Nil) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("incr clicks: %w", err)
	}
	return n, nil
}

func (s *SessionStore) SetRecipeCount(ctx context.Context, id string, n int) error {
	return s.setField(ctx, id, fieldRecipeCount, n)
}

func (s *SessionStore) SetDateOfBirth(ctx context.Context, id, dob string) error {
	return s.setField(ctx, id, fieldDateOfBirth, dob)
}

func (s *SessionStore) SetSearchIngredients(ctx context.Context, id string, ingredients []string) error {
	b, err := json.Marshal(nonNil(ingredients))
	if err != nil {
		return err
	}
	return s.setField(ctx, id, fieldIngredients, string(b))
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// setField writes one field of an existing session; HSET keeps the key's TTL.
func (s *SessionStore) setField(ctx context.Context, id, field string, value any) error {
	if id == "" {
		return repository.ErrNotFound
	}
	err := hsetIfExists.Run(ctx, s.rdb, []string{sessionKey(id)}, field, value).Err()
	if errors.Is(err, redis.Nil) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ repository.SessionRepository = (*SessionStore)(nil)
