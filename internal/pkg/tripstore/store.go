// Package tripstore persists trips, broker profiles and share links in
// Redis. Keys are scoped per user; share links live under their own
// namespace with a TTL.
package tripstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

const shareIDLength = 14

const shareIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

type Store struct {
	redis    RedisClient
	shareTTL time.Duration
}

func NewStore(redisClient RedisClient, shareTTL time.Duration) *Store {
	return &Store{
		redis:    redisClient,
		shareTTL: shareTTL,
	}
}

func (s *Store) tripIndexKey(userID string) string {
	return fmt.Sprintf("itinerary:trips:%s", userID)
}

func (s *Store) tripDocKey(userID, id string) string {
	return fmt.Sprintf("itinerary:trip:%s:%s", userID, id)
}

func (s *Store) brokerKey(userID string) string {
	return fmt.Sprintf("itinerary:broker:%s", userID)
}

func (s *Store) shareKey(shareID string) string {
	return fmt.Sprintf("itinerary:share:%s", shareID)
}

func (s *Store) uploadLockKey(userID string) string {
	return fmt.Sprintf("itinerary:extract:lock:%s", userID)
}

// RouteSummary renders the first departure and final arrival, the short
// form shown in the trip history list.
func RouteSummary(t dto.Trip) string {
	if len(t.Legs) == 0 {
		return "—"
	}

	first := t.Legs[0].Departure.AirportCode
	if first == "" {
		first = "?"
	}

	last := t.Legs[len(t.Legs)-1].Arrival.AirportCode
	if last == "" {
		last = "?"
	}

	return fmt.Sprintf("%s → %s", first, last)
}

// SaveTrip appends a trip to the user's history and returns the stored
// document id.
func (s *Store) SaveTrip(ctx context.Context, userID string, t dto.Trip, template string) (string, error) {
	stored := dto.StoredTrip{
		ID:         uuid.NewString(),
		TripID:     t.TripID,
		ClientName: clientNameOrUnknown(t),
		Route:      RouteSummary(t),
		Trip:       t,
		Template:   template,
		CreatedAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("failed to marshal stored trip: %w", err)
	}

	if err := s.redis.Set(ctx, s.tripDocKey(userID, stored.ID), data, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to set stored trip: %w", err)
	}

	err = s.redis.ZAdd(ctx, s.tripIndexKey(userID), redis.Z{
		Score:  float64(stored.CreatedAt.UnixMilli()),
		Member: stored.ID,
	}).Err()
	if err != nil {
		return "", fmt.Errorf("failed to index stored trip: %w", err)
	}

	return stored.ID, nil
}

// ListTrips returns the user's history, newest first. Index entries
// whose document has vanished are skipped rather than failing the list.
func (s *Store) ListTrips(ctx context.Context, userID string) ([]dto.StoredTrip, error) {
	ids, err := s.redis.ZRevRange(ctx, s.tripIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read trip index: %w", err)
	}

	trips := make([]dto.StoredTrip, 0, len(ids))
	for _, id := range ids {
		data, err := s.redis.Get(ctx, s.tripDocKey(userID, id)).Bytes()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				return nil, fmt.Errorf("failed to read stored trip: %w", err)
			}

			slog.WarnContext(ctx, "trip index entry without document, skipping",
				slog.String("id", id))
			continue
		}

		var stored dto.StoredTrip
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored trip: %w", err)
		}

		trips = append(trips, stored)
	}

	return trips, nil
}

func (s *Store) DeleteTrip(ctx context.Context, userID, id string) error {
	if err := s.redis.Del(ctx, s.tripDocKey(userID, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete stored trip: %w", err)
	}

	if err := s.redis.ZRem(ctx, s.tripIndexKey(userID), id).Err(); err != nil {
		return fmt.Errorf("failed to unindex stored trip: %w", err)
	}

	return nil
}

func (s *Store) SaveBrokerProfile(ctx context.Context, userID string, profile dto.BrokerProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal broker profile: %w", err)
	}

	if err := s.redis.Set(ctx, s.brokerKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set broker profile: %w", err)
	}

	return nil
}

// GetBrokerProfile falls back to the default profile when the user has
// never customized one.
func (s *Store) GetBrokerProfile(ctx context.Context, userID string) (dto.BrokerProfile, error) {
	data, err := s.redis.Get(ctx, s.brokerKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dto.DefaultBrokerProfile(), nil
		}

		return dto.BrokerProfile{}, fmt.Errorf("failed to read broker profile: %w", err)
	}

	var profile dto.BrokerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return dto.BrokerProfile{}, fmt.Errorf("failed to unmarshal broker profile: %w", err)
	}

	return profile, nil
}

// CreateShare stores the {trip, profile, template} tuple behind a random
// share id. Profile images are downscaled first so the stored document
// stays size-bounded.
func (s *Store) CreateShare(ctx context.Context, userID string, t dto.Trip,
	profile dto.BrokerProfile, template string) (string, error) {

	shared := dto.SharedTrip{
		Trip:          t,
		BrokerProfile: compressProfileImages(ctx, profile),
		Template:      template,
		UserID:        userID,
		CreatedAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(shared)
	if err != nil {
		return "", fmt.Errorf("failed to marshal shared trip: %w", err)
	}

	shareID := randomShareID()
	if err := s.redis.Set(ctx, s.shareKey(shareID), data, s.shareTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to set shared trip: %w", err)
	}

	return shareID, nil
}

func (s *Store) GetShare(ctx context.Context, shareID string) (dto.SharedTrip, error) {
	data, err := s.redis.Get(ctx, s.shareKey(shareID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dto.SharedTrip{}, ErrShareNotFound
		}

		return dto.SharedTrip{}, fmt.Errorf("failed to read shared trip: %w", err)
	}

	var shared dto.SharedTrip
	if err := json.Unmarshal(data, &shared); err != nil {
		return dto.SharedTrip{}, fmt.Errorf("failed to unmarshal shared trip: %w", err)
	}

	return shared, nil
}

// AcquireUploadLock gates concurrent extraction pipelines for one user:
// only the holder may run an upload through the model.
func (s *Store) AcquireUploadLock(ctx context.Context, userID string, timeout time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, s.uploadLockKey(userID), "1", timeout).Result()
}

func (s *Store) ReleaseUploadLock(ctx context.Context, userID string) error {
	return s.redis.Del(ctx, s.uploadLockKey(userID)).Err()
}

func clientNameOrUnknown(t dto.Trip) string {
	if t.Client.Name == "" {
		return "Unknown"
	}

	return t.Client.Name
}

func randomShareID() string {
	b := make([]byte, shareIDLength)
	for i := range b {
		b[i] = shareIDAlphabet[rand.Intn(len(shareIDAlphabet))]
	}

	return string(b)
}
