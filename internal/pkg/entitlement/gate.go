// Package entitlement decides whether a user may export another PDF.
// Subscribers verified against the billing API export freely; everyone
// else burns down a per-user free-export counter held in Redis.
package entitlement

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Decr(ctx context.Context, key string) *redis.IntCmd
}

type Config struct {
	BillingAPIURL string
	Timeout       time.Duration
	FreeExports   int
	HTTPClient    *http.Client
}

type Gate struct {
	redis         RedisClient
	billingAPIURL string
	freeExports   int
	httpClient    *http.Client
}

func NewGate(redisClient RedisClient, cfg Config) *Gate {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Gate{
		redis:         redisClient,
		billingAPIURL: cfg.BillingAPIURL,
		freeExports:   cfg.FreeExports,
		httpClient:    httpClient,
	}
}

func (g *Gate) counterKey(userID string) string {
	return fmt.Sprintf("itinerary:exports:remaining:%s", userID)
}

// Allow reports whether the user may export right now. Subscribers pass
// unconditionally; free-tier users pass while their counter is positive.
func (g *Gate) Allow(ctx context.Context, userID, customerID string) error {
	if g.isSubscribed(ctx, customerID) {
		return nil
	}

	remaining, err := g.remaining(ctx, userID)
	if err != nil {
		return err
	}

	if remaining <= 0 {
		return ErrPaymentRequired
	}

	return nil
}

// Consume burns one free export. Subscribers are never charged against
// the counter.
func (g *Gate) Consume(ctx context.Context, userID, customerID string) error {
	if g.isSubscribed(ctx, customerID) {
		return nil
	}

	if err := g.redis.Decr(ctx, g.counterKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to decrement export counter: %w", err)
	}

	return nil
}

// Remaining returns the free exports left, initializing the counter on
// first sight of the user.
func (g *Gate) Remaining(ctx context.Context, userID string) (int, error) {
	return g.remaining(ctx, userID)
}

func (g *Gate) remaining(ctx context.Context, userID string) (int, error) {
	key := g.counterKey(userID)

	if err := g.redis.SetNX(ctx, key, strconv.Itoa(g.freeExports), 0).Err(); err != nil {
		return 0, fmt.Errorf("failed to initialize export counter: %w", err)
	}

	value, err := g.redis.Get(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read export counter: %w", err)
	}

	remaining, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse export counter: %w", err)
	}

	return remaining, nil
}

type subscriptionResponse struct {
	IsActive bool `json:"isActive"`
}

// isSubscribed asks the billing API whether the customer has an active
// subscription. Billing outages degrade to the free tier rather than
// failing the export outright.
func (g *Gate) isSubscribed(ctx context.Context, customerID string) bool {
	if customerID == "" || g.billingAPIURL == "" {
		return false
	}

	endpoint := fmt.Sprintf("%s/check-subscription?customer_id=%s",
		g.billingAPIURL, url.QueryEscape(customerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "billing check failed, treating as free tier",
			slog.String("error", err.Error()))

		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "billing check failed, treating as free tier",
			slog.Int("status_code", resp.StatusCode))

		return false
	}

	var parsed subscriptionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		slog.WarnContext(ctx, "billing check returned malformed body, treating as free tier",
			slog.String("error", err.Error()))

		return false
	}

	return parsed.IsActive
}
