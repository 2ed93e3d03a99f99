package firmware

import (
	"errors"
	"fmt"
	"time"
)

// Source tells where a version string came from.
type Source int

const (
	// SourceHistory marks a version derived from source-control history.
	SourceHistory Source = iota
	// SourceOverride marks a version supplied by the operator.
	SourceOverride
)

// String returns a short lowercase name of the source for logs.
func (s Source) String() string {
	switch s {
	case SourceHistory:
		return "history"
	case SourceOverride:
		return "override"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// FallbackValue is the commit count used when history cannot provide a positive one.
const FallbackValue = 1

// ErrZeroCommits is the fallback reason when the month has no commits yet.
var ErrZeroCommits = errors.New("no commits in the current month")

// CommitCount is the number of commits in a calendar month.
type CommitCount struct {
	// Value is the count to put into the version, never less than FallbackValue.
	Value int
	// Fallback is true when Value was not obtained from history.
	Fallback bool
	// Reason explains why the fallback was used.
	Reason error
}

// Counted returns a count obtained from history.
// Non-positive counts are not informative and turn into a fallback.
func Counted(n int) CommitCount {
	if n < FallbackValue {
		return FallbackCount(ErrZeroCommits)
	}

	return CommitCount{Value: n}
}

// FallbackCount returns the fallback count with the provided reason.
func FallbackCount(reason error) CommitCount {
	return CommitCount{
		Value:    FallbackValue,
		Fallback: true,
		Reason:   reason,
	}
}

// Version is the resolved firmware version.
type Version struct {
	// Value is the version string itself.
	Value string
	// Source tells whether Value is an override or derived from history.
	Source Source
	// Count is the commit count used for a derived version. Zero for overrides.
	Count CommitCount
}

// String returns the version string.
func (v Version) String() string {
	return v.Value
}

// Override returns a version supplied by the operator.
func Override(value string) Version {
	return Version{
		Value:  value,
		Source: SourceOverride,
	}
}

// Derived returns a YEAR.MONTH.COUNT version. The month is not zero-padded.
func Derived(year int, month time.Month, count CommitCount) Version {
	return Version{
		Value:  fmt.Sprintf("%d.%d.%d", year, int(month), count.Value),
		Source: SourceHistory,
		Count:  count,
	}
}
