package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amane-app/amane-go/internal/utils"
)

func TestStringCoercion(t *testing.T) {
	require.Equal(t, "x", utils.String("x"))
	require.Empty(t, utils.String(nil))
	require.Empty(t, utils.String(42))
	require.Equal(t, "fallback", utils.StringOr(nil, "fallback"))
	require.Equal(t, "fallback", utils.StringOr("", "fallback"))
	require.Equal(t, "set", utils.StringOr("set", "fallback"))
}

func TestNumberCoercion(t *testing.T) {
	require.Equal(t, 1.5, utils.Number(1.5))
	require.Zero(t, utils.Number("1.5"))
	require.Zero(t, utils.Number(nil))
}

func TestStringSliceDropsNonStrings(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, utils.StringSlice([]any{"a", 1, "b", nil}))
	require.Empty(t, utils.StringSlice("not-a-slice"))
}

func TestPointerHelpers(t *testing.T) {
	require.Equal(t, 3, utils.Value(utils.Ptr(3)))
	var nilPtr *string
	require.Empty(t, utils.Value(nilPtr))
}
