package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"notes-assistant/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const sessionKey = "notesassistant:quiz:session:01HGZ8VNRYXS8QKNJV5GRWPWDQ"

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(sessionKey).SetVal(`{"items":[]}`)
		val, err := adapter.Get(ctx, sessionKey)
		assert.NoError(t, err)
		assert.Equal(t, `{"items":[]}`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(sessionKey).RedisNil()
		val, err := adapter.Get(ctx, sessionKey)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection refused")
		mock.ExpectGet(sessionKey).SetErr(redisErr)
		_, err := adapter.Get(ctx, sessionKey)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	ttl := 24 * time.Hour

	mock.ExpectSet(sessionKey, "v", ttl).SetVal("OK")
	assert.NoError(t, adapter.Set(ctx, sessionKey, "v", ttl))

	redisErr := errors.New("OOM")
	mock.ExpectSet(sessionKey, "v", ttl).SetErr(redisErr)
	assert.ErrorIs(t, adapter.Set(ctx, sessionKey, "v", ttl), redisErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Hash(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := "notesassistant:artifact:last:s1"

	mock.ExpectHSet(key, "notes", "text").SetVal(1)
	assert.NoError(t, adapter.HSet(ctx, key, "notes", "text"))

	mock.ExpectHGet(key, "notes").SetVal("text")
	val, err := adapter.HGet(ctx, key, "notes")
	assert.NoError(t, err)
	assert.Equal(t, "text", val)

	mock.ExpectHGet(key, "summary").SetErr(redis.Nil)
	_, err = adapter.HGet(ctx, key, "summary")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	mock.ExpectExpire(key, time.Hour).SetVal(true)
	assert.NoError(t, adapter.Expire(ctx, key, time.Hour))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(ctx))

	redisErr := errors.New("down")
	mock.ExpectPing().SetErr(redisErr)
	assert.ErrorIs(t, adapter.Ping(ctx), redisErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}
