// Package redisdoc implements the mirroring engine's document info store:
// a read-optimized projection of each galleryinfo, stored as JSON under a
// per-id key with a companion id-set for enumeration.
package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/saebasol/sunflower/internal/info"
)

const idSetKey = "info:ids"

// ErrAlreadyExists is returned by Add when the id is already a member of
// the id-set, mirroring the relational store's create-only semantics.
var ErrAlreadyExists = errors.New("redisdoc: info already exists")

// ErrNotFound is returned when no value exists for the requested id.
var ErrNotFound = errors.New("redisdoc: info not found")

// Store is a go-redis-backed DocumentInfo. It implements
// mirror.DocumentInfo.
type Store struct {
	rdb *redis.Client
}

// New wraps an already-configured *redis.Client.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(id int64) string {
	return "info:" + strconv.FormatInt(id, 10)
}

// Add stores i, failing with ErrAlreadyExists if id is already a set
// member. The membership write must happen first so its result decides
// create-only semantics, so this isn't a single pipeline like Delete; if
// the value write fails after membership was claimed, Add removes the
// membership again before returning the error.
func (s *Store) Add(ctx context.Context, i info.Info) error {
	data, err := json.Marshal(i)
	if err != nil {
		return fmt.Errorf("redisdoc: encode %d: %w", i.ID, err)
	}

	added, err := s.rdb.SAdd(ctx, idSetKey, i.ID).Result()
	if err != nil {
		return fmt.Errorf("redisdoc: add %d: %w", i.ID, err)
	}
	if added == 0 {
		return ErrAlreadyExists
	}

	if err := s.rdb.Set(ctx, key(i.ID), data, 0).Err(); err != nil {
		if remErr := s.rdb.SRem(ctx, idSetKey, i.ID).Err(); remErr != nil {
			return fmt.Errorf("redisdoc: add %d: %w (rollback failed: %v)", i.ID, err, remErr)
		}
		return fmt.Errorf("redisdoc: add %d: %w", i.ID, err)
	}
	return nil
}

// Delete removes the value and set membership for id in one pipeline.
// Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	pipe.SRem(ctx, idSetKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisdoc: delete %d: %w", id, err)
	}
	return nil
}

// Get returns the Info stored for id.
func (s *Store) Get(ctx context.Context, id int64) (info.Info, error) {
	data, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return info.Info{}, ErrNotFound
	}
	if err != nil {
		return info.Info{}, fmt.Errorf("redisdoc: get %d: %w", id, err)
	}
	var i info.Info
	if err := json.Unmarshal(data, &i); err != nil {
		return info.Info{}, fmt.Errorf("redisdoc: decode %d: %w", id, err)
	}
	return i, nil
}

// AllIDs returns every id in the id-set, ascending.
func (s *Store) AllIDs(ctx context.Context) ([]int64, error) {
	members, err := s.rdb.SMembers(ctx, idSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redisdoc: all ids: %w", err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redisdoc: all ids: %w", err)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
