package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/argus/internal/framing"
	"github.com/UnknownOlympus/argus/internal/metrics"
	"github.com/UnknownOlympus/argus/internal/models"
	"github.com/UnknownOlympus/argus/internal/repository"
)

// jobLimit is the maximum number of jobs fetched per poll.
const jobLimit = 100

// Framer computes a camera pose for a framing request.
type Framer interface {
	Frame(ctx context.Context, req framing.Request) (models.CameraPose, error)
}

// FramingService drains the framing job queue: it polls the repository,
// frames pending jobs on a worker pool and stores the resulting poses.
type FramingService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	framer       Framer               // Framing engine computing camera poses
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval for polling the job queue
}

// NewFramingService creates a new instance of FramingService.
// It takes a logger, a repository interface, a framing engine, metrics for
// monitoring, the number of workers to use, and a polling interval.
func NewFramingService(
	log *slog.Logger,
	repo repository.Interface,
	framer Framer,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *FramingService {
	return &FramingService{
		log:          log,
		repo:         repo,
		framer:       framer,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run starts the framing service, which periodically polls for pending jobs.
// It listens for a cancellation signal from the context to gracefully stop the service.
func (fs *FramingService) Run(ctx context.Context) {
	ticker := time.NewTicker(fs.pollInterval)
	defer ticker.Stop()

	fs.log.InfoContext(ctx, "Framing service started...")

	for {
		select {
		case <-ctx.Done():
			fs.log.InfoContext(ctx, "Framing service stopped.")
			return
		case <-ticker.C:
			fs.log.DebugContext(ctx, "Polling for pending framing jobs...")
			fs.processJobs(ctx)
		}
	}
}

// processJobs fetches pending jobs from the repository, starts a worker pool to process them,
// and waits for all workers to finish.
func (fs *FramingService) processJobs(ctx context.Context) {
	jobs, err := fs.repo.FetchPendingJobs(ctx, jobLimit)
	if err != nil {
		fs.log.ErrorContext(ctx, "Failed to fetch framing jobs", "error", err)
		return
	}
	if len(jobs) == 0 {
		fs.log.DebugContext(ctx, "No framing jobs to process.")
		return
	}

	fs.log.InfoContext(
		ctx,
		"Found framing jobs to process. Starting worker pool.",
		"jobs",
		len(jobs),
		"num_workers",
		fs.numWorkers,
	)

	queue := make(chan models.FramingJob, len(jobs))
	var wgr sync.WaitGroup

	for i := 1; i <= fs.numWorkers; i++ {
		wgr.Add(1)
		go fs.worker(ctx, i, &wgr, queue)
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	wgr.Wait()
	fs.log.InfoContext(ctx, "Processing batch finished")
}

// worker frames jobs from the queue channel until it is closed. A job whose
// inputs cannot be framed is marked failed; a framed job gets its pose saved.
func (fs *FramingService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, queue <-chan models.FramingJob) {
	defer wg.Done()
	for job := range queue {
		fs.metrics.ActiveWorkers.Inc()
		fs.processJob(ctx, idx, job)
		fs.metrics.ActiveWorkers.Dec()
	}
}

func (fs *FramingService) processJob(ctx context.Context, idx int, job models.FramingJob) {
	fs.log.DebugContext(ctx, "Processing framing job", "worker", idx, "job", job.ID)

	pose, err := fs.framer.Frame(ctx, framing.Request{
		Points:  job.Points,
		Heading: job.Heading,
		Padding: job.Padding,
	})
	if err != nil {
		fs.log.WarnContext(ctx, "Failed to frame job", "worker", idx, "job", job.ID, "error", err)
		fs.metrics.JobsProcessed.WithLabelValues("failure").Inc()

		if err = fs.repo.MarkJobFailed(ctx, job.ID, err.Error()); err != nil {
			fs.log.ErrorContext(ctx, "Could not mark framing job as failed", "worker", idx, "job", job.ID, "error", err)
		}
		return
	}

	if err = fs.repo.SaveCameraPose(ctx, job.ID, pose); err != nil {
		fs.log.ErrorContext(ctx, "Failed to save camera pose for job", "worker", idx, "job", job.ID, "error", err)
		fs.metrics.JobsProcessed.WithLabelValues("unsaved").Inc()
		return
	}

	fs.metrics.JobsProcessed.WithLabelValues("success").Inc()
	fs.log.DebugContext(ctx, "Worker successfully processed the job", "worker", idx, "job", job.ID)
}
