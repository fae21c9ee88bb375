package workers

import (
	"context"
	"time"

	"iwork_backend/internal/logger"
	"iwork_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenCleanupWorker purges expired refresh tokens on a daily schedule.
// It holds its own DB handle; cleanup runs outside any request scope.
type TokenCleanupWorker struct {
	db        *gorm.DB
	tokenRepo repositories.RefreshTokenRepository
	interval  time.Duration
}

func NewTokenCleanupWorker(db *gorm.DB, tokenRepo repositories.RefreshTokenRepository) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		db:        db,
		tokenRepo: tokenRepo,
		interval:  24 * time.Hour,
	}
}

// Start launches the cleanup loop. The first sweep runs immediately so a
// restart never postpones cleanup by a full interval.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TokenCleanupWorker) run(ctx context.Context) {
	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *TokenCleanupWorker) sweep() {
	deleted, err := w.tokenRepo.DeleteExpired(w.db)
	if err != nil {
		logger.Error("expired token cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		logger.Info("expired refresh tokens removed", "count", deleted)
	}
}
