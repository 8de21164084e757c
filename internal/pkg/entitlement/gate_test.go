package entitlement

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

func billingServer(t *testing.T, isActive bool) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/check-subscription" {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		if isActive {
			w.Write([]byte(`{"isActive":true}`))
		} else {
			w.Write([]byte(`{"isActive":false}`))
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestGate_Allow_Closure(t *testing.T) {
	allowRequest := func(customerID, billingURL string, mockSetup func(m *MockRedisClient), wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			if mockSetup != nil {
				mockSetup(m)
			}

			g := NewGate(m, Config{
				BillingAPIURL: billingURL,
				Timeout:       time.Second,
				FreeExports:   3,
			})

			err := g.Allow(context.Background(), "user-1", customerID)
			if !errors.Is(err, wantErr) {
				t.Fatalf("expected error %v, got %v", wantErr, err)
			}
		}
	}

	t.Run("free_tier_with_remaining", allowRequest("", "", func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "itinerary:exports:remaining:user-1", "3", time.Duration(0)).
			Return(redis.NewBoolResult(true, nil))
		m.On("Get", mock.Anything, "itinerary:exports:remaining:user-1").
			Return(redis.NewStringResult("2", nil))
	}, nil))

	t.Run("free_tier_exhausted", allowRequest("", "", func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "itinerary:exports:remaining:user-1", "3", time.Duration(0)).
			Return(redis.NewBoolResult(false, nil))
		m.On("Get", mock.Anything, "itinerary:exports:remaining:user-1").
			Return(redis.NewStringResult("0", nil))
	}, ErrPaymentRequired))

	t.Run("counter_went_negative", allowRequest("", "", func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "itinerary:exports:remaining:user-1", "3", time.Duration(0)).
			Return(redis.NewBoolResult(false, nil))
		m.On("Get", mock.Anything, "itinerary:exports:remaining:user-1").
			Return(redis.NewStringResult("-1", nil))
	}, ErrPaymentRequired))

	t.Run("subscriber_skips_counter", func(t *testing.T) {
		srv := billingServer(t, true)
		allowRequest("cus_123", srv.URL, nil, nil)(t)
	})

	t.Run("inactive_subscription_uses_counter", func(t *testing.T) {
		srv := billingServer(t, false)
		allowRequest("cus_123", srv.URL, func(m *MockRedisClient) {
			m.On("SetNX", mock.Anything, "itinerary:exports:remaining:user-1", "3", time.Duration(0)).
				Return(redis.NewBoolResult(false, nil))
			m.On("Get", mock.Anything, "itinerary:exports:remaining:user-1").
				Return(redis.NewStringResult("0", nil))
		}, ErrPaymentRequired)(t)
	})

	t.Run("billing_outage_degrades_to_free_tier", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		allowRequest("cus_123", srv.URL, func(m *MockRedisClient) {
			m.On("SetNX", mock.Anything, "itinerary:exports:remaining:user-1", "3", time.Duration(0)).
				Return(redis.NewBoolResult(false, nil))
			m.On("Get", mock.Anything, "itinerary:exports:remaining:user-1").
				Return(redis.NewStringResult("1", nil))
		}, nil)(t)
	})
}

func TestGate_Consume_Closure(t *testing.T) {
	t.Run("free_tier_decrements", func(t *testing.T) {
		m := NewMockRedisClient(t)
		m.On("Decr", mock.Anything, "itinerary:exports:remaining:user-1").
			Return(redis.NewIntResult(1, nil))

		g := NewGate(m, Config{FreeExports: 3, Timeout: time.Second})
		if err := g.Consume(context.Background(), "user-1", ""); err != nil {
			t.Fatalf("Consume returned error: %v", err)
		}
	})

	t.Run("subscriber_never_charged", func(t *testing.T) {
		srv := billingServer(t, true)

		m := NewMockRedisClient(t)

		g := NewGate(m, Config{
			BillingAPIURL: srv.URL,
			Timeout:       time.Second,
			FreeExports:   3,
		})
		if err := g.Consume(context.Background(), "user-1", "cus_123"); err != nil {
			t.Fatalf("Consume returned error: %v", err)
		}
	})
}
