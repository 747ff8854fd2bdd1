package repository

import (
	"context"

	"mint-agent-backend/internal/features/mint/models"
)

// Journal records mint attempts and reads them back newest first.
type Journal interface {
	Record(ctx context.Context, a *models.Attempt) error
	Recent(ctx context.Context, limit int64) ([]models.Attempt, error)
}
