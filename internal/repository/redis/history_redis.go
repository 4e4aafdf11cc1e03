// Package redis is the go-redis backed HistoryStore.
//
// Layout under the configured prefix:
//
//	<prefix>:report:seq          INCR counter for snapshot ids
//	<prefix>:reports:<team key>  LIST of snapshot JSON, newest at the head
//	<prefix>:chat:<session id>   HASH seq -> message JSON
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
)

const (
	poolSize     = 10
	minIdleConns = 1
	dialTimeout  = 5 * time.Second
	ioTimeout    = 3 * time.Second
)

// Connect parses url, applies pool settings and pings the server.
func Connect(ctx context.Context, url string, logger zerolog.Logger) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = poolSize
	opt.MinIdleConns = minIdleConns
	opt.DialTimeout = dialTimeout
	opt.ReadTimeout = ioTimeout
	opt.WriteTimeout = ioTimeout

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("connected to redis")
	return client, nil
}

type historyStore struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

// NewHistoryStore takes ownership of client; Close closes it.
func NewHistoryStore(client *goredis.Client, prefix string) repository.HistoryStore {
	return &historyStore{client: client, prefix: prefix, now: time.Now}
}

func (s *historyStore) seqKey() string { return s.prefix + ":report:seq" }

func (s *historyStore) reportsKey(team string) string {
	return s.prefix + ":reports:" + repository.TeamKey(team)
}

func (s *historyStore) chatKey(sessionID string) string { return s.prefix + ":chat:" + sessionID }

func (s *historyStore) AppendReport(ctx context.Context, snap model.ReportSnapshot) (model.ReportSnapshot, error) {
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return model.ReportSnapshot{}, mapErr(err)
	}
	snap.ID = id
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = s.now().UTC()
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return model.ReportSnapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.LPush(ctx, s.reportsKey(snap.TeamName), raw).Err(); err != nil {
		return model.ReportSnapshot{}, mapErr(err)
	}
	return snap, nil
}

func (s *historyStore) ListReports(ctx context.Context, team string, p repository.Page) (repository.PageResult[model.ReportSnapshot], error) {
	p = p.Normalize()
	key := s.reportsKey(team)

	var (
		llen *goredis.IntCmd
		rng  *goredis.StringSliceCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		llen = pipe.LLen(ctx, key)
		rng = pipe.LRange(ctx, key, int64(p.Offset), int64(p.Offset+p.Limit-1))
		return nil
	})
	if err != nil {
		return repository.PageResult[model.ReportSnapshot]{}, mapErr(err)
	}

	res := repository.PageResult[model.ReportSnapshot]{
		Items: make([]model.ReportSnapshot, 0, len(rng.Val())),
		Total: int(llen.Val()),
	}
	for _, raw := range rng.Val() {
		var snap model.ReportSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return repository.PageResult[model.ReportSnapshot]{}, fmt.Errorf("decode snapshot: %w", err)
		}
		res.Items = append(res.Items, snap)
	}
	return res, nil
}

func (s *historyStore) AppendMessage(ctx context.Context, m model.ChatMessage) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	ok, err := s.client.HSetNX(ctx, s.chatKey(m.SessionID), strconv.Itoa(m.Seq), raw).Result()
	if err != nil {
		return mapErr(err)
	}
	if !ok {
		return repository.ErrAlreadyExists
	}
	return nil
}

func (s *historyStore) ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	fields, err := s.client.HGetAll(ctx, s.chatKey(sessionID)).Result()
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]model.ChatMessage, 0, len(fields))
	for _, raw := range fields {
		var m model.ChatMessage
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (s *historyStore) Ping(ctx context.Context) error {
	return mapErr(s.client.Ping(ctx).Err())
}

func (s *historyStore) Close() error { return s.client.Close() }

// mapErr keeps context errors intact and reports everything else as unavailable storage.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
}
