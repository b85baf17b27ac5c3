// Package dtos holds the GraphQL-facing shapes and the transcoding between
// them and the backend wire types in services.
package dtos

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srhoton/srnext-bff/internal/utils"
)

// MaxGraphQLTimestamp is the AWSTimestamp ceiling, a 32-bit signed epoch
// (January 19, 2038 03:14:07 GMT).
const MaxGraphQLTimestamp int64 = 2147483647

func clampSeconds(seconds int64) int64 {
	if seconds > MaxGraphQLTimestamp {
		utils.Logger.WithFields(logrus.Fields{
			"seconds": seconds,
			"max":     MaxGraphQLTimestamp,
		}).Warn("Timestamp exceeds AWSTimestamp max value, capping")
		return MaxGraphQLTimestamp
	}
	return seconds
}

// ISOToSeconds converts an RFC 3339 timestamp to clamped epoch seconds.
// An unparseable value converts to 0 with a warning.
func ISOToSeconds(iso string) int64 {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, iso)
	}
	if err != nil {
		utils.Logger.WithField("value", iso).Warn("Failed to parse timestamp")
		return 0
	}
	return clampSeconds(t.Unix())
}

// ISOToSecondsPtr converts an optional RFC 3339 timestamp, preserving absence.
func ISOToSecondsPtr(iso *string) *int64 {
	if iso == nil || *iso == "" {
		return nil
	}
	s := ISOToSeconds(*iso)
	return &s
}

// MillisToSeconds converts epoch milliseconds to clamped epoch seconds.
func MillisToSeconds(ms int64) int64 {
	return clampSeconds(ms / 1000)
}

// MillisToSecondsPtr converts optional epoch milliseconds, treating nil and
// zero as absent.
func MillisToSecondsPtr(ms *int64) *int64 {
	if ms == nil || *ms == 0 {
		return nil
	}
	s := MillisToSeconds(*ms)
	return &s
}

// SecondsToMillisString renders epoch seconds as a millisecond string, the
// format the task schema uses for its timestamp fields. Zero is absent.
func SecondsToMillisString(seconds int64) *string {
	if seconds == 0 {
		return nil
	}
	s := strconv.FormatInt(seconds*1000, 10)
	return &s
}

// MillisStringToSeconds parses a millisecond string back to epoch seconds.
// Empty or malformed values are absent.
func MillisStringToSeconds(value *string) *int64 {
	if value == nil || *value == "" {
		return nil
	}
	ms, err := strconv.ParseInt(*value, 10, 64)
	if err != nil {
		return nil
	}
	s := ms / 1000
	return &s
}

// EpochStringToSeconds parses a numeric timestamp string without any unit
// conversion, the way part date fields pass through.
func EpochStringToSeconds(value *string) *int64 {
	if value == nil || *value == "" {
		return nil
	}
	n, err := strconv.ParseInt(*value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
