package dtos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestISOToSeconds(t *testing.T) {
	require.Equal(t, int64(1704067200), ISOToSeconds("2024-01-01T00:00:00Z"))
	require.Equal(t, int64(1704153600), ISOToSeconds("2024-01-02T00:00:00.000Z"))
	require.Equal(t, int64(0), ISOToSeconds("not-a-timestamp"))
}

func TestISOToSecondsClampsAtMax(t *testing.T) {
	// Year 2100 is past the 32-bit epoch ceiling.
	require.Equal(t, MaxGraphQLTimestamp, ISOToSeconds("2100-01-01T00:00:00Z"))
}

func TestISOToSecondsPtr(t *testing.T) {
	require.Nil(t, ISOToSecondsPtr(nil))

	empty := ""
	require.Nil(t, ISOToSecondsPtr(&empty))

	iso := "2024-01-01T00:00:00Z"
	got := ISOToSecondsPtr(&iso)
	require.NotNil(t, got)
	require.Equal(t, int64(1704067200), *got)
}

func TestMillisToSeconds(t *testing.T) {
	require.Equal(t, int64(1704067200), MillisToSeconds(1704067200000))
	require.Equal(t, MaxGraphQLTimestamp, MillisToSeconds(4102444800000))
}

func TestMillisToSecondsPtrTreatsZeroAsAbsent(t *testing.T) {
	require.Nil(t, MillisToSecondsPtr(nil))

	zero := int64(0)
	require.Nil(t, MillisToSecondsPtr(&zero))

	ms := int64(1704067200000)
	got := MillisToSecondsPtr(&ms)
	require.NotNil(t, got)
	require.Equal(t, int64(1704067200), *got)
}

func TestSecondsToMillisString(t *testing.T) {
	require.Nil(t, SecondsToMillisString(0))

	got := SecondsToMillisString(1704067200)
	require.NotNil(t, got)
	require.Equal(t, "1704067200000", *got)
}

func TestMillisStringToSeconds(t *testing.T) {
	require.Nil(t, MillisStringToSeconds(nil))

	bad := "later"
	require.Nil(t, MillisStringToSeconds(&bad))

	ms := "1704067200000"
	got := MillisStringToSeconds(&ms)
	require.NotNil(t, got)
	require.Equal(t, int64(1704067200), *got)
}

func TestEpochStringToSecondsIsPassThrough(t *testing.T) {
	require.Nil(t, EpochStringToSeconds(nil))

	// No unit conversion: the value goes through as-is.
	v := "1704067200"
	got := EpochStringToSeconds(&v)
	require.NotNil(t, got)
	require.Equal(t, int64(1704067200), *got)

	bad := "soon"
	require.Nil(t, EpochStringToSeconds(&bad))
}
