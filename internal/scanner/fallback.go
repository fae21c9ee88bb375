package scanner

import (
	"context"

	"iwork_backend/internal/logger"
)

// FallbackScanner tries the primary scanner and falls back to the
// secondary when the primary errors. Used to keep pattern screening
// running when the remote moderation endpoint is down.
type FallbackScanner struct {
	primary   Scanner
	secondary Scanner
}

func NewFallbackScanner(primary, secondary Scanner) *FallbackScanner {
	return &FallbackScanner{primary: primary, secondary: secondary}
}

func (s *FallbackScanner) Scan(ctx context.Context, text string) (*Result, error) {
	result, err := s.primary.Scan(ctx, text)
	if err == nil {
		return result, nil
	}
	logger.CtxWarn(ctx, "primary scanner failed, falling back", "error", err)
	return s.secondary.Scan(ctx, text)
}
