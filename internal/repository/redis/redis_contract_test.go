package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/repository/contract"
)

var (
	client *goredis.Client
	skippy bool
)

func TestMain(m *testing.M) {
	url := os.Getenv("REDIS_URL")
	if os.Getenv("CONTRACT_TESTS") != "1" || url == "" {
		skippy = true
		os.Exit(m.Run())
	}
	var err error
	client, err = Connect(context.Background(), url, zerolog.New(io.Discard))
	if err != nil {
		fmt.Println("[contract] redis connect error:", err)
		os.Exit(1)
	}
	code := m.Run()
	_ = client.Close()
	os.Exit(code)
}

// every subtest writes under its own prefix and removes it afterwards
func makeHistoryStore(t *testing.T) (repository.HistoryStore, func()) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and REDIS_URL")
	}
	prefix := "scout-test-" + uuid.NewString()
	// the store shares the package client, so cleanup must not Close it
	return NewHistoryStore(client, prefix), func() {
		ctx := context.Background()
		iter := client.Scan(ctx, 0, prefix+":*", 100).Iterator()
		for iter.Next(ctx) {
			_ = client.Del(ctx, iter.Val()).Err()
		}
	}
}

func TestHistoryStore_RedisContract(t *testing.T) {
	contract.RunHistoryStoreContract(t, makeHistoryStore)
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(context.Canceled), context.Canceled)
	assert.ErrorIs(t, mapErr(errors.New("dial tcp: refused")), repository.ErrUnavailable)
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-url", zerolog.New(io.Discard))
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	s := &historyStore{prefix: "scout"}
	assert.Equal(t, "scout:reports:cloud9", s.reportsKey("  Cloud9 "))
	assert.Equal(t, "scout:chat:abc", s.chatKey("abc"))
	assert.Equal(t, "scout:report:seq", s.seqKey())
}
