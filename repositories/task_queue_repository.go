package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/utils"
)

const (
	nbRetriesTaskDispatch = 5 // at 1sec*attempt^4, that's ~10min for the 5th attempt
	priorityTaskDispatch  = 2 // nb: higher number is lower priority (between 1 and 4)
	priorityCancelNotice  = 1 // cancellations jump ahead of pending dispatches
)

type TaskQueueRepository interface {
	EnqueueTaskDispatch(
		ctx context.Context,
		tx Transaction,
		task models.Task,
	) error
	EnqueueTaskCancelNotice(
		ctx context.Context,
		correlationId string,
	) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

// EnqueueTaskDispatch inserts the dispatch job in the same transaction as the
// task row, so a rollback never leaves an orphan job. UniqueOpts dedupes
// re-inserts of the same args under at-least-once delivery.
func (r riverRepository) EnqueueTaskDispatch(
	ctx context.Context,
	tx Transaction,
	task models.Task,
) error {
	queue := river.QueueDefault
	if task.AgencyId != nil {
		queue = task.AgencyId.String()
	}
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.TaskDispatchArgs{
		TaskId:        task.Id,
		CorrelationId: task.CorrelationId,
		TaskType:      task.Type,
		AgencyId:      task.AgencyId,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesTaskDispatch,
		Priority:    priorityTaskDispatch,
		Queue:       queue,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued task dispatch",
		"task_id", task.Id, "job_id", res.Job.ID, "queue", queue)
	return nil
}

// EnqueueTaskCancelNotice is best effort and deliberately not transactional:
// the cancellation is already committed by the time we tell the worker pool.
func (r riverRepository) EnqueueTaskCancelNotice(
	ctx context.Context,
	correlationId string,
) error {
	res, err := r.client.Insert(ctx, models.TaskCancelNoticeArgs{
		CorrelationId: correlationId,
	}, &river.InsertOpts{
		Priority: priorityCancelNotice,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued task cancel notice",
		"correlation_id", correlationId, "job_id", res.Job.ID)
	return nil
}
