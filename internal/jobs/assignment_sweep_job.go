package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep every ten seconds.
const DefaultSweepSchedule = "*/10 * * * * *"

// AssignmentSweepJob periodically retries worker assignment for orders
// waiting on a worker: accepted orders awaiting a picker, picked orders
// awaiting a packer, packed orders awaiting a rider. Orders in categories
// that skip the picking stage are left for the store to advance manually.
type AssignmentSweepJob struct {
	orders   ports.OrderRepository
	assigner *commands.WorkerAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAssignmentSweepJob creates the sweep job. An empty schedule falls back
// to DefaultSweepSchedule.
func NewAssignmentSweepJob(
	orders ports.OrderRepository,
	assigner *commands.WorkerAssigner,
	schedule string,
	logger *slog.Logger,
) *AssignmentSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &AssignmentSweepJob{
		orders:   orders,
		assigner: assigner,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "assignment_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *AssignmentSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if sweepErr := j.Sweep(ctx); sweepErr != nil {
			j.logger.ErrorContext(ctx, "Assignment sweep failed", "error", sweepErr)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *AssignmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment sweep job stopped")
}

// Sweep runs one pass over all waiting orders. A failed assignment is logged
// and does not stop the pass.
func (j *AssignmentSweepJob) Sweep(ctx context.Context) error {
	passes := []struct {
		status order.Status
		role   services.WorkerRole
	}{
		{order.Accepted, services.RolePicker},
		{order.Picked, services.RolePacker},
		{order.Packed, services.RoleRider},
	}

	for _, pass := range passes {
		waiting, err := j.orders.GetAllInStatus(ctx, pass.status)
		if err != nil {
			return err
		}

		for _, aggregate := range waiting {
			if pass.role == services.RolePicker && !aggregate.Category().AutoAssignsPicker() {
				continue
			}
			if err := j.assigner.TryAssign(ctx, aggregate.ID(), pass.role); err != nil {
				j.logger.WarnContext(ctx, "Assignment retry failed",
					"orderId", aggregate.ID().String(),
					"role", string(pass.role),
					"error", err)
			}
		}
	}
	return nil
}
