// Package jobs holds the timer-driven background tasks that run
// independently of the request path.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"digitalstore/internal/repository"
)

// TokenPruner periodically deletes expired session tokens. Expired
// tokens are already rejected at lookup time; the sweep just keeps the
// table from growing without bound.
type TokenPruner struct {
	userRepo repository.UserRepository
	interval time.Duration
	logger   *zap.Logger
}

func NewTokenPruner(userRepo repository.UserRepository, interval time.Duration, logger *zap.Logger) *TokenPruner {
	return &TokenPruner{
		userRepo: userRepo,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on every tick until the context is cancelled. It runs one
// sweep immediately on start.
func (p *TokenPruner) Run(ctx context.Context) {
	p.sweep(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *TokenPruner) sweep(ctx context.Context) {
	pruned, err := p.userRepo.PruneExpiredTokens(ctx, time.Now())
	if err != nil {
		p.logger.Error("session token sweep failed", zap.Error(err))
		return
	}
	if pruned > 0 {
		p.logger.Info("pruned expired session tokens", zap.Int64("count", pruned))
	}
}
