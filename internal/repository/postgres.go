package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/UnknownOlympus/argus/internal/models"
)

// FetchPendingJobs retrieves a list of framing jobs that are waiting for a camera pose.
// It returns jobs that have neither a pose nor a recorded failure.
// The results are ordered by creation date and limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of jobs to retrieve.
//
// Returns:
// - A slice of models.FramingJob containing the jobs that match the criteria.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchPendingJobs(ctx context.Context, limit int) ([]models.FramingJob, error) {
	var jobs []models.FramingJob
	query := `
		SELECT job_id, points, heading, padding_top, padding_right, padding_bottom, padding_left
		FROM framing_jobs
		WHERE status = 'pending'
		ORDER BY created_at ASC, job_id ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending framing jobs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var job models.FramingJob
		var rawPoints []byte
		if errScan := rows.Scan(
			&job.ID,
			&rawPoints,
			&job.Heading,
			&job.Padding.Top,
			&job.Padding.Right,
			&job.Padding.Bottom,
			&job.Padding.Left,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending framing job: %w", errScan)
		}

		// Unreadable points leave the job empty; the engine rejects it and it is marked failed.
		if errDecode := json.Unmarshal(rawPoints, &job.Points); errDecode != nil {
			r.log.WarnContext(ctx, "Failed to decode points of framing job", "ID", job.ID, "error", errDecode)
			job.Points = nil
		}

		r.log.DebugContext(ctx, "A new pending framing job has been received.",
			"ID", job.ID, "points", len(job.Points))
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return jobs, nil
}

// SaveCameraPose stores the computed camera pose of the job identified by jobID
// and marks it done. It clears any previous error.
func (r *Repository) SaveCameraPose(ctx context.Context, jobID int, pose models.CameraPose) error {
	query := `
		UPDATE framing_jobs
		SET
			center_lat = $1,
			center_lng = $2,
			center_alt = $3,
			range_m = $4,
			tilt = $5,
			status = 'done',
			error = NULL
		WHERE
			job_id = $6;
	`

	_, err := r.db.Exec(ctx, query,
		pose.Center.Latitude, pose.Center.Longitude, pose.Center.Altitude, pose.Range, pose.Tilt, jobID)
	if err != nil {
		return fmt.Errorf("failed to save camera pose: %w", err)
	}

	return nil
}

// MarkJobFailed marks the job identified by jobID as failed and stores the error
// message. Framing errors are caused by the job's own inputs, so failed jobs are
// not fetched again.
func (r *Repository) MarkJobFailed(ctx context.Context, jobID int, errMsg string) error {
	query := `
		UPDATE framing_jobs
		SET
			status = 'failed',
			error = $1
		WHERE job_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, jobID)
	if err != nil {
		return fmt.Errorf("failed to mark framing job as failed: %w", err)
	}

	return nil
}
