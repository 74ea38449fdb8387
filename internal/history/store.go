package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store provides profile-scoped Redis operations for the solve journal.
// All keys and channels are automatically namespaced with the profile name.
// The store is safe for concurrent use.
type Store struct {
	rdb     *redis.Client
	profile string
	limit   int
}

// NewStore creates a journal store for the given profile. A limit above
// zero caps how many entries are retained; older entries are dropped as
// new ones are recorded. Returns an error if profile is empty.
func NewStore(redisOpts *redis.Options, profile string, limit int) (*Store, error) {
	if profile == "" {
		return nil, fmt.Errorf("profile cannot be empty")
	}

	return &Store{
		rdb:     redis.NewClient(redisOpts),
		profile: profile,
		limit:   limit,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
// After calling Close(), the store should not be used.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity. Useful before deciding whether to
// journal at all. Returns an error if Redis is not reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Record writes an entry to the journal and publishes an event.
// Validates the entry before writing, indexes it by solve time, then trims
// entries past the retention limit. Publishes full entry JSON to
// destrier:{profile}:solve_events after a successful write.
func (s *Store) Record(ctx context.Context, e *Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}

	hash, err := EntryToHash(e)
	if err != nil {
		return fmt.Errorf("failed to serialize entry: %w", err)
	}

	key := EntryKey(s.profile, e.ID)
	if err := s.rdb.HSet(ctx, key, hash).Err(); err != nil {
		return fmt.Errorf("failed to write entry to Redis: %w", err)
	}

	z := redis.Z{
		Score:  float64(e.SolvedAtMs),
		Member: e.ID,
	}
	if err := s.rdb.ZAdd(ctx, IndexKey(s.profile), z).Err(); err != nil {
		return fmt.Errorf("failed to index entry: %w", err)
	}

	if err := s.trim(ctx); err != nil {
		return err
	}

	entryJSON, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry for event: %w", err)
	}

	channel := EventsChannel(s.profile)
	if err := s.rdb.Publish(ctx, channel, entryJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish solve event: %w", err)
	}

	return nil
}

// trim drops the oldest entries once the index grows past the retention
// limit. A limit of zero or below means unlimited retention.
func (s *Store) trim(ctx context.Context) error {
	if s.limit <= 0 {
		return nil
	}

	indexKey := IndexKey(s.profile)
	count, err := s.rdb.ZCard(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to count journal entries: %w", err)
	}

	excess := count - int64(s.limit)
	if excess <= 0 {
		return nil
	}

	oldest, err := s.rdb.ZRange(ctx, indexKey, 0, excess-1).Result()
	if err != nil {
		return fmt.Errorf("failed to find oldest journal entries: %w", err)
	}

	for _, id := range oldest {
		if err := s.rdb.Del(ctx, EntryKey(s.profile, id)).Err(); err != nil {
			return fmt.Errorf("failed to delete trimmed entry: %w", err)
		}
	}

	if err := s.rdb.ZRemRangeByRank(ctx, indexKey, 0, excess-1).Err(); err != nil {
		return fmt.Errorf("failed to trim journal index: %w", err)
	}

	return nil
}

// Get retrieves an entry by full ID.
// Returns (nil, redis.Nil) if the entry doesn't exist.
// Use IsNotFound() to check for not-found errors.
func (s *Store) Get(ctx context.Context, entryID string) (*Entry, error) {
	key := EntryKey(s.profile, entryID)

	hashData, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read entry from Redis: %w", err)
	}

	// HGetAll returns an empty map for non-existent keys
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	entry, err := HashToEntry(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize entry: %w", err)
	}

	return entry, nil
}

// Recent returns journal entries newest first, filtered by an optional
// time window in Unix milliseconds. A sinceMs or untilMs of zero leaves
// that side of the window open; a limit of zero or below returns all
// matching entries. Index entries whose hash has been trimmed away in a
// concurrent write are skipped rather than failing the listing.
func (s *Store) Recent(ctx context.Context, limit int, sinceMs, untilMs int64) ([]*Entry, error) {
	rangeBy := &redis.ZRangeBy{Min: "-inf", Max: "+inf"}
	if sinceMs > 0 {
		rangeBy.Min = strconv.FormatInt(sinceMs, 10)
	}
	if untilMs > 0 {
		rangeBy.Max = strconv.FormatInt(untilMs, 10)
	}
	if limit > 0 {
		rangeBy.Count = int64(limit)
	}

	ids, err := s.rdb.ZRevRangeByScore(ctx, IndexKey(s.profile), rangeBy).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal index: %w", err)
	}

	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.Get(ctx, id)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Scan returns the IDs of every journal entry whose ID starts with the
// given prefix, sorted for deterministic output. An empty prefix matches
// all entries. Used for short ID resolution.
func (s *Store) Scan(ctx context.Context, prefix string) ([]string, error) {
	pattern := fmt.Sprintf("destrier:%s:solve:%s*", s.profile, prefix)
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()

	keyPrefixLen := len(EntryKey(s.profile, ""))
	var ids []string
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[keyPrefixLen:])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// Clear deletes every journal entry and the index for this profile.
// Returns the number of entries removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	iter := s.rdb.Scan(ctx, 0, EntryKeyPattern(s.profile), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan journal entries: %w", err)
	}

	for _, key := range keys {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			return 0, fmt.Errorf("failed to delete entry: %w", err)
		}
	}

	if err := s.rdb.Del(ctx, IndexKey(s.profile)).Err(); err != nil {
		return 0, fmt.Errorf("failed to delete journal index: %w", err)
	}

	return len(keys), nil
}

// Subscription represents an active Pub/Sub subscription to solve events.
// Caller must call Close() when done to clean up resources.
// Subscriptions deliver full entries via the Events() channel.
type Subscription struct {
	events <-chan *Entry
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of solve events.
// The channel will be closed when the subscription is closed or the
// context is cancelled.
func (s *Subscription) Events() <-chan *Entry {
	return s.events
}

// Errors returns the channel of subscription errors.
// Errors include JSON unmarshaling failures and other non-fatal issues.
// The subscription continues after errors - messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements io.Closer.
// Safe to call multiple times - subsequent calls are no-ops.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe subscribes to solve events for this profile.
// Returns a Subscription that delivers full entries as they are recorded.
// Caller must call subscription.Close() when done.
// Context cancellation also stops the subscription.
//
// Events are delivered on a buffered channel (size 10) to prevent blocking.
// If the subscriber is too slow, events may be dropped by Redis Pub/Sub
// (at-most-once delivery).
func (s *Store) Subscribe(ctx context.Context) (*Subscription, error) {
	channel := EventsChannel(s.profile)
	pubsub := s.rdb.Subscribe(ctx, channel)

	eventsChan := make(chan *Entry, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var entry Entry
				if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
					// Send error on error channel, skip message
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal solve event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &entry:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error
// (redis.Nil). Use this to check if Get returned "not found".
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
