package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/oshokin/fw-version/internal/domain/firmware"
	"github.com/oshokin/fw-version/internal/logger"
	"github.com/oshokin/fw-version/internal/repository/history"
)

// SinceTimestamp returns the first instant of the month in the form git
// accepts for --since. Unlike the version itself, the month is zero-padded.
func SinceTimestamp(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d-01 00:00:00", year, int(month))
}

// MonthCommitCount counts commits made in the given month. Zero commits and
// every failure yield the fallback count; no error escapes.
func MonthCommitCount(ctx context.Context, repo history.Repository, projectDir string, year int, month time.Month) domain.CommitCount {
	since := SinceTimestamp(year, month)

	count, err := repo.CountCommitsSince(ctx, projectDir, since)
	if err != nil {
		logger.WarnKV(ctx, "Commit count unavailable, using fallback",
			"since", since, "error", err)

		return domain.FallbackCount(err)
	}

	result := domain.Counted(count)
	if result.Fallback {
		logger.WarnKV(ctx, "No commits this month, using fallback", "since", since)
	} else {
		logger.DebugKV(ctx, "Counted commits", "since", since, "count", count)
	}

	return result
}

// Resolve returns the trimmed override when it is not blank, otherwise a
// version derived from the commit history of projectDir at time now.
func Resolve(ctx context.Context, repo history.Repository, projectDir, override string, now time.Time) domain.Version {
	if override = strings.TrimSpace(override); override != "" {
		logger.DebugKV(ctx, "Using version override", "version", override)

		return domain.Override(override)
	}

	count := MonthCommitCount(ctx, repo, projectDir, now.Year(), now.Month())

	return domain.Derived(now.Year(), now.Month(), count)
}
