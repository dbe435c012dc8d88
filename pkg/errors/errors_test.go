package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("config.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "config.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "config.yaml:12")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("history_limit", "must be at most 100", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "history_limit", validationErr.Field)
	require.Contains(t, validationErr.Message, "at most 100")
}

func TestLookupErrorDistinguishesAmbiguity(t *testing.T) {
	t.Parallel()

	missing := NewLookupError("abc")
	ambiguous := NewAmbiguousLookupError("a")

	var lookupErr *LookupError
	require.ErrorAs(t, missing, &lookupErr)
	require.False(t, lookupErr.Ambiguous)
	require.Contains(t, missing.Error(), "no history entry")

	require.ErrorAs(t, ambiguous, &lookupErr)
	require.True(t, lookupErr.Ambiguous)
	require.Contains(t, ambiguous.Error(), "more than one")
}

func TestExportErrorIncludesPath(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("permission denied")
	err := NewExportError("/tmp/out/card.tsx", underlying)

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	require.Equal(t, "/tmp/out/card.tsx", exportErr.Path)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "card.tsx")
}
