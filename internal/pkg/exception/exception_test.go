//go:build unit

package exception

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationError_Is(t *testing.T) {
	sentinel := ApplicationError{
		Message:    "upstream unavailable",
		StatusCode: 502,
	}

	isRequest := func(err, target error, want bool) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, errors.Is(err, target))
		}
	}

	cause := errors.New("status 500")

	t.Run("sentinel_matches_itself", isRequest(sentinel, sentinel, true))
	t.Run("caused_copy_matches_sentinel",
		isRequest(sentinel.WithCause(cause), sentinel, true))
	t.Run("wrapped_caused_copy_matches_sentinel",
		isRequest(fmt.Errorf("retrying: %w", sentinel.WithCause(cause)), sentinel, true))
	t.Run("different_message_does_not_match",
		isRequest(sentinel.WithCause(cause), ApplicationError{Message: "other"}, false))
	t.Run("caused_target_requires_same_cause",
		isRequest(sentinel.WithCause(errors.New("status 500")), sentinel.WithCause(cause), false))
	t.Run("caused_target_matches_on_identical_cause",
		isRequest(sentinel.WithCause(cause), sentinel.WithCause(cause), true))
	t.Run("plain_error_does_not_match",
		isRequest(errors.New("upstream unavailable"), sentinel, false))
}

func TestApplicationError_ErrorAndCode(t *testing.T) {
	err := ApplicationError{Message: "bad payload", StatusCode: 400}

	assert.Equal(t, "bad payload", err.Error())
	assert.Equal(t, 400, err.ErrorCode())

	caused := err.WithCause(errors.New("illegal base64 data"))

	assert.Equal(t, "bad payload: illegal base64 data", caused.Error())
	assert.Equal(t, 400, caused.ErrorCode())
	// WithCause copies; the sentinel itself stays cause-free.
	assert.Nil(t, err.Cause)
}
