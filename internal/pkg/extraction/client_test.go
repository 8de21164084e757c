package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

func modelServer(t *testing.T, failures int32, responseText string) (*httptest.Server, *int32) {
	t.Helper()

	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= failures {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		if r.Header.Get("x-goog-api-key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{{Content: content{Parts: []part{{Text: responseText}}}}}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func testClient(apiURL string, maxRetries int) *Client {
	return NewClient(Config{
		APIURL:     apiURL,
		APIKey:     "test-key",
		Model:      "doc-reader-1",
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	})
}

func TestClient_Extract_Closure(t *testing.T) {
	extractRequest := func(failures int32, maxRetries int, wantText string, wantErr error, wantCalls int32) func(t *testing.T) {
		return func(t *testing.T) {
			srv, calls := modelServer(t, failures, wantText)
			c := testClient(srv.URL, maxRetries)

			got, err := c.Extract(context.Background(), []byte("doc"), "application/pdf")

			if wantErr != nil {
				if !errors.Is(err, wantErr) {
					t.Fatalf("expected error %v, got %v", wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("Extract returned error: %v", err)
				}
				if string(got) != wantText {
					t.Fatalf("expected %q, got %q", wantText, got)
				}
			}

			if atomic.LoadInt32(calls) != wantCalls {
				t.Fatalf("expected %d upstream calls, got %d", wantCalls, atomic.LoadInt32(calls))
			}
		}
	}

	t.Run("first_try_success", extractRequest(0, 2, `{"trip_id":"X"}`, nil, 1))
	t.Run("retries_through_transient_failure", extractRequest(2, 2, `{"trip_id":"X"}`, nil, 3))
	t.Run("exhausted_retries", extractRequest(10, 2, "", ErrModelUnavailable, 3))
}

func TestClient_Suggest_Closure(t *testing.T) {
	t.Run("parses_suggestion_list", func(t *testing.T) {
		suggestions := `[{"id":"s1","type":"privacy","message":"hide tail number",
			"suggested_fix":{"field":"visibility.show_tail_number","value":"false"}}]`

		srv, _ := modelServer(t, 0, suggestions)
		c := testClient(srv.URL, 0)

		got, err := c.Suggest(context.Background(), dto.Trip{TripID: "CHTR-8841"})
		if err != nil {
			t.Fatalf("Suggest returned error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 suggestion, got %d", len(got))
		}
		if got[0].SuggestedFix == nil || got[0].SuggestedFix.Field != "visibility.show_tail_number" {
			t.Fatalf("unexpected suggested fix: %+v", got[0].SuggestedFix)
		}
	})

	t.Run("malformed_list_is_an_error", func(t *testing.T) {
		srv, _ := modelServer(t, 0, `{"not":"a list"}`)
		c := testClient(srv.URL, 0)

		if _, err := c.Suggest(context.Background(), dto.Trip{}); err == nil {
			t.Fatal("expected an error for a non-list payload")
		}
	})
}
