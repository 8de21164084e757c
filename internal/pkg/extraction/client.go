// Package extraction talks to the hosted document-understanding model.
// It owns the prompts, the wire format, retries and rate limiting; it
// does not interpret the returned JSON beyond handing it to the
// normalizer.
package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-redis/redis_rate/v10"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

const extractPrompt = `You are an expert private aviation charter broker assistant.
Extract all trip details from the provided trip sheet document.

Rules:
1. Extract the itinerary/trip/charter reference number exactly as printed on the document (it may be labelled "Itinerary #", "Trip #", "Charter #", "Ref #", "Booking #", or similar). Output it as trip_id. Preserve the original value character-for-character; do NOT invent or alter it.
2. Identify all flight legs.
3. Extract airport codes (IATA/ICAO), cities, and times.
4. Extract aircraft model and tail number.
5. Extract passenger names if present.
6. If block time is missing but ETD/ETA are present, calculate it.
7. Normalize all data into the requested JSON structure.
8. Avoid empty strings in required fields. If you cannot read a value, infer it from context. If still unknown, use "TBD".

Return a valid JSON object matching the schema.`

const repairPrompt = `The extraction missed critical fields. Re-read the document and fill the missing values.
Use the existing JSON as a starting point. Do not leave required fields blank.
If truly unreadable, infer from context or use "TBD".`

const suggestPrompt = `Review this extracted trip data for a private aviation charter.
Identify potential errors or improvements:
1. Timezone mismatches (e.g., arrival before departure in UTC).
2. Missing block times (suggest auto-calculation if ETD/ETA are present).
3. Round trip detection (if leg 2 returns to leg 1 origin).
4. Privacy suggestions (hiding tail or pax names).

Return a list of structured suggestions. For each suggestion, provide a message, explanation, and if possible a 'suggested_fix' with a 'field' path (e.g., 'legs.0.metrics.block_time_minutes') and the 'value' to set.`

// Config for the extraction client. The limiter is shared with the rest
// of the service so one tenant cannot exhaust the model quota.
type Config struct {
	APIURL       string
	APIKey       string
	Model        string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      *redis_rate.Limiter
	HTTPClient   *http.Client
}

type Client struct {
	apiURL       string
	apiKey       string
	model        string
	timeout      time.Duration
	maxRetries   int
	rateLimitRPS int
	limiter      *redis_rate.Limiter
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		apiURL:       cfg.APIURL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		timeout:      cfg.Timeout,
		maxRetries:   cfg.MaxRetries,
		rateLimitRPS: cfg.RateLimitRPS,
		limiter:      cfg.Limiter,
		httpClient:   httpClient,
	}
}

// wire format of the generate-content endpoint

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generation_config"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Extract submits the document and returns the raw trip JSON as the
// model produced it. Callers must not trust the shape; the normalizer
// owns gap detection.
func (c *Client) Extract(ctx context.Context, file []byte, mimeType string) ([]byte, error) {
	return c.generate(ctx, []part{
		{Text: extractPrompt},
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(file),
		}},
	})
}

// Repair re-submits the document together with the prior raw JSON and a
// fill-the-gaps instruction. The single-use bound lives in the
// normalizer, not here.
func (c *Client) Repair(ctx context.Context, prior, file []byte, mimeType string) ([]byte, error) {
	return c.generate(ctx, []part{
		{Text: repairPrompt},
		{Text: fmt.Sprintf("Existing JSON: %s", prior)},
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(file),
		}},
	})
}

// Suggest asks the model for advisory corrections to a normalized trip.
func (c *Client) Suggest(ctx context.Context, t dto.Trip) ([]dto.AISuggestion, error) {
	serialized, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal trip: %w", err)
	}

	raw, err := c.generate(ctx, []part{
		{Text: suggestPrompt},
		{Text: fmt.Sprintf("Trip Data: %s", serialized)},
	})
	if err != nil {
		return nil, err
	}

	var suggestions []dto.AISuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}

	return suggestions, nil
}

func (c *Client) generate(ctx context.Context, parts []part) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		res, err := c.limiter.Allow(ctx, "limit:extraction",
			redis_rate.PerSecond(c.rateLimitRPS))
		if err != nil {
			return nil, fmt.Errorf("failed to rate limit: %w", err)
		}

		if res.Allowed == 0 {
			return nil, ErrModelRateLimitExceeded
		}
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.apiURL, c.model)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.call(ctx, url, body)
		if err == nil {
			return raw, nil
		}

		lastErr = err
		slog.WarnContext(ctx, "extraction model call failed",
			slog.Int("attempt", attempt+1), slog.String("error", err.Error()))

		if attempt < c.maxRetries {
			// Exponential backoff: 200ms * 2^attempt
			backoff := time.Duration(200*(1<<attempt)) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled or timeout: %w", ctx.Err())
			}
		}
	}

	return nil, ErrModelUnavailable.WithCause(lastErr)
}

func (c *Client) call(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d: %s", resp.StatusCode, respBody)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("model returned no candidates")
	}

	return []byte(parsed.Candidates[0].Content.Parts[0].Text), nil
}
