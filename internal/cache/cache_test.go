package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	body := []byte(`{"shifts":[],"employees":[]}`)

	key := Key("validate", body, 42)
	assert.Equal(t, key, Key("validate", body, 42))
	assert.Regexp(t, `^schedule_validate_[0-9a-f]{16}_000000000000002a$`, key)

	assert.NotEqual(t, key, Key("cost", body, 42))
	assert.NotEqual(t, key, Key("validate", body, 43))
	assert.NotEqual(t, key, Key("validate", []byte(`{}`), 42))
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	require.NoError(t, c.Set(context.Background(), "k", []byte("v")))

	value, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestRedis_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	var c Cache = NewRedis(client, time.Minute)
	_, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "k", []byte("v")))
}
