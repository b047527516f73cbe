package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/newtonic3d/estimatevault/internal/auth/usecase"
	estimateUseCase "github.com/newtonic3d/estimatevault/internal/estimate/usecase"
)

// RunCleanExpiredTokens deletes bearer tokens and file access tokens that
// expired more than days ago. With dryRun set it only counts them.
//
// estimateUseCase may be nil when the vault is not configured; file tokens are
// then left untouched and reported as skipped.
func RunCleanExpiredTokens(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	estimateUseCase estimateUseCase.EstimateUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning expired tokens",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	authCount, err := tokenUseCase.CleanupExpired(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired auth tokens: %w", err)
	}

	var fileCount int64
	fileSkipped := estimateUseCase == nil
	if !fileSkipped {
		fileCount, err = estimateUseCase.CleanExpiredFileTokens(ctx, days, dryRun)
		if err != nil {
			return fmt.Errorf("failed to cleanup expired file tokens: %w", err)
		}
	}

	logger.Info("cleanup completed",
		slog.Int64("auth_tokens", authCount),
		slog.Int64("file_tokens", fileCount),
		slog.Bool("file_tokens_skipped", fileSkipped),
		slog.Bool("dry_run", dryRun),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"auth_tokens":         authCount,
			"file_tokens":         fileCount,
			"file_tokens_skipped": fileSkipped,
			"days":                days,
			"dry_run":             dryRun,
		})
	}

	verb := "Successfully deleted"
	if dryRun {
		verb = "Dry-run mode: Would delete"
	}
	_, _ = fmt.Fprintf(writer, "%s %d expired auth token(s) older than %d day(s)\n", verb, authCount, days)
	if fileSkipped {
		_, _ = fmt.Fprintln(writer, "Skipped file access tokens: estimate vault is not configured")
		return nil
	}
	_, _ = fmt.Fprintf(writer, "%s %d expired file access token(s) older than %d day(s)\n", verb, fileCount, days)
	return nil
}
