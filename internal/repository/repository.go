package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/argus/internal/models"
)

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchPendingJobs(ctx context.Context, limit int) ([]models.FramingJob, error)
	SaveCameraPose(ctx context.Context, jobID int, pose models.CameraPose) error
	MarkJobFailed(ctx context.Context, jobID int, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
