package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"not found", &HTTPStatusError{URL: "u", StatusCode: 404}, KindNotFound},
		{"server error", fmt.Errorf("fetch: %w", &HTTPStatusError{StatusCode: 503}), KindHTTP},
		{"timeout sentinel", fmt.Errorf("%w: boom", ErrTimeout), KindTimeout},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformedPayload), KindMalformed},
		{"empty", ErrNoQualifyingContent, KindNoContent},
		{"other", errors.New("connection refused"), KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestHTTPStatusErrorMessage(t *testing.T) {
	require.Contains(t, (&HTTPStatusError{URL: "x", StatusCode: 404}).Error(), "not found")
	require.Contains(t, (&HTTPStatusError{URL: "x", StatusCode: 429}).Error(), "429")
}
