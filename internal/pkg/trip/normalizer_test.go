package trip

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_GapFillTotality(t *testing.T) {
	normalizeRequest := func(raw string) func(t *testing.T) {
		return func(t *testing.T) {
			got, _ := Normalize(context.Background(), []byte(raw), nil)

			if len(got.Legs) == 0 {
				t.Fatal("expected at least one leg")
			}
			assert.NotEmpty(t, got.Client.Name)
			assert.NotEmpty(t, got.Aircraft.Model)
			assert.NotEmpty(t, got.Aircraft.TailNumber)
			assert.NotEmpty(t, got.TripID)
			assert.NotNil(t, got.Passengers)
			assert.NotNil(t, got.Crew)

			for _, leg := range got.Legs {
				assert.NotEmpty(t, leg.LegID)
				assert.NotEmpty(t, leg.Label)
				assert.NotEmpty(t, leg.Departure.AirportCode)
				assert.NotEmpty(t, leg.Arrival.AirportCode)
			}

			assert.True(t, got.Visibility.ShowTailNumber)
			assert.True(t, got.Visibility.ShowWeather)
		}
	}

	t.Run("empty_object", normalizeRequest(`{}`))
	t.Run("malformed_json", normalizeRequest(`{"legs": [{`))
	t.Run("null_legs", normalizeRequest(`{"client":{"name":"A"},"legs":null}`))
	t.Run("leg_without_airports", normalizeRequest(`{"legs":[{"label":"x"}]}`))
}

func TestNormalize_Placeholders(t *testing.T) {
	got, _ := Normalize(context.Background(), []byte(`{"legs":[{}]}`), nil)

	assert.Equal(t, Placeholder, got.Client.Name)
	assert.Equal(t, Placeholder, got.Aircraft.Model)
	assert.Equal(t, Placeholder, got.Aircraft.TailNumber)
	assert.Equal(t, Placeholder, got.Legs[0].Departure.AirportCode)
	assert.Equal(t, Placeholder, got.Legs[0].Arrival.DatetimeLocal)

	// Cosmetic fields stay blank rather than being marked.
	assert.Equal(t, "", got.Legs[0].DateLocal)
	assert.Equal(t, "", got.Legs[0].Departure.State)
	assert.Equal(t, "", got.Legs[0].Departure.Timezone)
}

func TestNormalize_IdentityAssignment(t *testing.T) {
	t.Run("explicit_id_preserved_verbatim", func(t *testing.T) {
		got, _ := Normalize(context.Background(),
			[]byte(`{"trip_id":"itn-0042/B","legs":[{}]}`), nil)
		assert.Equal(t, "itn-0042/B", got.TripID)
	})

	t.Run("synthesized_id_shape", func(t *testing.T) {
		got, _ := Normalize(context.Background(), []byte(`{}`), nil)
		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8,9}$`), got.TripID)
	})
}

func TestNormalize_LegIDStability(t *testing.T) {
	raw := []byte(`{"legs":[{"label":"a"},{},{"label":"c"}]}`)

	first, _ := Normalize(context.Background(), raw, nil)
	second, _ := Normalize(context.Background(), raw, nil)

	wantIDs := []string{"leg-0", "leg-1", "leg-2"}
	for i, leg := range first.Legs {
		assert.Equal(t, wantIDs[i], leg.LegID)
		assert.Equal(t, wantIDs[i], second.Legs[i].LegID)
	}
}

func TestNormalize_Labels(t *testing.T) {
	labelRequest := func(raw string, want []string) func(t *testing.T) {
		return func(t *testing.T) {
			got, _ := Normalize(context.Background(), []byte(raw), nil)

			labels := make([]string, len(got.Legs))
			for i, leg := range got.Legs {
				labels[i] = leg.Label
			}

			if diff := cmp.Diff(want, labels); diff != "" {
				t.Fatalf("labels mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("single_leg_is_outbound", labelRequest(`{"legs":[{}]}`, []string{"Outbound"}))
	t.Run("round_trip", labelRequest(`{"legs":[{},{}]}`, []string{"Outbound", "Return"}))
	t.Run("interior_legs_numbered", labelRequest(`{"legs":[{},{},{},{}]}`,
		[]string{"Outbound", "Leg 2", "Leg 3", "Return"}))
	t.Run("supplied_label_preserved", labelRequest(`{"legs":[{"label":"Positioning"},{}]}`,
		[]string{"Positioning", "Return"}))
	// A whitespace-only label is non-empty at assemble time, so it skips
	// positional labelling and falls through to the generic default.
	t.Run("whitespace_label_defaults_to_leg", labelRequest(`{"legs":[{"label":"   "}]}`,
		[]string{"Leg"}))
}

func TestNormalize_SingleRepairBound(t *testing.T) {
	incomplete := []byte(`{"client":{"name":""},"legs":[]}`)

	t.Run("repair_called_exactly_once", func(t *testing.T) {
		calls := 0
		repair := func(_ context.Context, prior []byte) ([]byte, error) {
			calls++
			assert.Equal(t, incomplete, prior)
			// The repair response is itself still critically incomplete.
			return []byte(`{"client":{"name":"Acme"},"legs":[]}`), nil
		}

		got, repaired := Normalize(context.Background(), incomplete, repair)

		assert.Equal(t, 1, calls)
		assert.True(t, repaired)
		assert.Equal(t, "Acme", got.Client.Name)
		assert.Len(t, got.Legs, 1)
		assert.Equal(t, Placeholder, got.Aircraft.Model)
	})

	t.Run("repair_error_degrades_to_placeholders", func(t *testing.T) {
		repair := func(context.Context, []byte) ([]byte, error) {
			return nil, errors.New("model unavailable")
		}

		got, repaired := Normalize(context.Background(), incomplete, repair)

		assert.True(t, repaired)
		assert.Equal(t, Placeholder, got.Client.Name)
		assert.Len(t, got.Legs, 1)
	})

	t.Run("no_repair_when_complete", func(t *testing.T) {
		complete := []byte(`{
			"client":{"name":"Jane Doe"},
			"aircraft":{"model":"Citation X","tail_number":"N123AB"},
			"legs":[{
				"departure":{"airport_code":"VNY","datetime_local":"2023-06-25T12:58:00"},
				"arrival":{"airport_code":"SJC","datetime_local":"2023-06-25T14:00:00"}
			}]
		}`)
		repair := func(context.Context, []byte) ([]byte, error) {
			t.Fatal("repair must not be invoked for a complete payload")
			return nil, nil
		}

		got, repaired := Normalize(context.Background(), complete, repair)

		assert.False(t, repaired)
		assert.Equal(t, "Jane Doe", got.Client.Name)
	})
}

func TestCalcBlockTimeMinutes(t *testing.T) {
	blockTimeRequest := func(dep, arr string, want *int) func(t *testing.T) {
		return func(t *testing.T) {
			got := calcBlockTimeMinutes(dep, arr)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("block time mismatch (-want +got):\n%s", diff)
			}
		}
	}

	minutes := func(n int) *int { return &n }

	t.Run("same_day", blockTimeRequest(
		"2023-06-25T12:58:00", "2023-06-25T14:00:00", minutes(62)))
	t.Run("midnight_rollover", blockTimeRequest(
		"2023-06-25T23:30:00", "2023-06-25T00:15:00", minutes(45)))
	t.Run("unparsable_departure", blockTimeRequest(
		"TBD", "2023-06-25T14:00:00", nil))
	t.Run("unparsable_arrival", blockTimeRequest(
		"2023-06-25T12:58:00", "", nil))
	t.Run("rfc3339_with_offset", blockTimeRequest(
		"2023-06-25T12:58:00-07:00", "2023-06-25T14:00:00-07:00", minutes(62)))
}

func TestNormalize_DerivedBlockTimes(t *testing.T) {
	t.Run("supplied_metric_preserved", func(t *testing.T) {
		raw := []byte(`{"legs":[{
			"departure":{"datetime_local":"2023-06-25T12:58:00"},
			"arrival":{"datetime_local":"2023-06-25T14:00:00"},
			"metrics":{"block_time_minutes":100}
		}]}`)

		got, _ := Normalize(context.Background(), raw, nil)

		assert.NotNil(t, got.Legs[0].Metrics.BlockTimeMinutes)
		assert.Equal(t, 100, *got.Legs[0].Metrics.BlockTimeMinutes)
	})

	t.Run("unparsable_datetimes_leave_metric_absent", func(t *testing.T) {
		got, _ := Normalize(context.Background(), []byte(`{"legs":[{}]}`), nil)
		assert.Nil(t, got.Legs[0].Metrics.BlockTimeMinutes)
	})
}

func TestNormalize_EndToEndScenario(t *testing.T) {
	raw := []byte(`{
		"trip_id":"CHTR-8841",
		"client":{"name":"M. Rivera"},
		"aircraft":{"model":"Gulfstream G280","tail_number":"N280GJ"},
		"legs":[
			{
				"departure":{"airport_code":"VNY","city":"Van Nuys","datetime_local":"2023-06-25T12:58:00"},
				"arrival":{"airport_code":"SJC","city":"San Jose","datetime_local":"2023-06-25T14:00:00"}
			},
			{
				"departure":{"airport_code":"SJC","city":"San Jose","datetime_local":"2023-06-27T16:30:00"},
				"arrival":{"airport_code":"VNY","city":"Van Nuys","datetime_local":"2023-06-27T17:30:00"}
			}
		]
	}`)

	got, repaired := Normalize(context.Background(), raw, func(context.Context, []byte) ([]byte, error) {
		t.Fatal("complete payload must not trigger repair")
		return nil, nil
	})

	assert.False(t, repaired)
	assert.Equal(t, "CHTR-8841", got.TripID)
	assert.Equal(t, []string{"leg-0", "leg-1"},
		[]string{got.Legs[0].LegID, got.Legs[1].LegID})
	assert.Equal(t, "Outbound", got.Legs[0].Label)
	assert.Equal(t, "Return", got.Legs[1].Label)
	assert.Equal(t, 62, *got.Legs[0].Metrics.BlockTimeMinutes)
	assert.Equal(t, 60, *got.Legs[1].Metrics.BlockTimeMinutes)
}

func TestHasCriticalGaps(t *testing.T) {
	gapRequest := func(raw string, want bool) func(t *testing.T) {
		return func(t *testing.T) {
			if got := HasCriticalGaps([]byte(raw)); got != want {
				t.Fatalf("HasCriticalGaps() = %v, want %v", got, want)
			}
		}
	}

	complete := `{
		"client":{"name":"A"},
		"aircraft":{"model":"B","tail_number":"C"},
		"legs":[{
			"departure":{"airport_code":"VNY","datetime_local":"2023-06-25T12:58:00"},
			"arrival":{"airport_code":"SJC","datetime_local":"2023-06-25T14:00:00"}
		}]
	}`

	t.Run("complete", gapRequest(complete, false))
	t.Run("empty", gapRequest(`{}`, true))
	t.Run("missing_client_name", gapRequest(`{"client":{},"aircraft":{"model":"B","tail_number":"C"},"legs":[{}]}`, true))
	t.Run("missing_tail_number", gapRequest(`{"client":{"name":"A"},"aircraft":{"model":"B"},"legs":[{}]}`, true))
	t.Run("empty_legs", gapRequest(`{"client":{"name":"A"},"aircraft":{"model":"B","tail_number":"C"},"legs":[]}`, true))
	t.Run("leg_missing_datetime", gapRequest(`{
		"client":{"name":"A"},
		"aircraft":{"model":"B","tail_number":"C"},
		"legs":[{
			"departure":{"airport_code":"VNY"},
			"arrival":{"airport_code":"SJC","datetime_local":"2023-06-25T14:00:00"}
		}]
	}`, true))
}
