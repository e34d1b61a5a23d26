package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opentransit/editor-backend/mocks"
	"github.com/opentransit/editor-backend/models"
)

type TaskCallbacksTestSuite struct {
	suite.Suite
	repository         *mocks.TaskRepository
	audit              *mocks.AuditRecorder
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	transaction        *mocks.Transaction

	correlationId string
	agencyId      uuid.UUID
	ownerId       uuid.UUID
	pendingTask   models.Task
	runningTask   models.Task
	cancelledTask models.Task
}

func (suite *TaskCallbacksTestSuite) SetupTest() {
	suite.repository = new(mocks.TaskRepository)
	suite.audit = new(mocks.AuditRecorder)
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)

	suite.correlationId = "f41a3b74-92b2-4a48-b160-f89bfee549b2"
	suite.agencyId = uuid.MustParse("25ab6323-1657-4a52-923a-ef6983fe4532")
	suite.ownerId = uuid.MustParse("0ae6fda7-f7b3-4218-9fc3-4efa329432a7")
	suite.pendingTask = models.Task{
		Id:            uuid.MustParse("5b33cde3-0b53-4e21-8d07-bf395f376a1c"),
		CorrelationId: suite.correlationId,
		Name:          "feed import",
		Type:          models.TaskTypeImport,
		OwnerId:       suite.ownerId,
		AgencyId:      &suite.agencyId,
		Status:        models.TaskPending,
	}
	suite.runningTask = suite.pendingTask
	suite.runningTask.Status = models.TaskRunning
	suite.runningTask.Progress = 40
	suite.cancelledTask = suite.pendingTask
	suite.cancelledTask.Status = models.TaskCancelled
}

func (suite *TaskCallbacksTestSuite) makeUsecase() *TaskCallbacksUseCase {
	return &TaskCallbacksUseCase{
		transactionFactory: suite.transactionFactory,
		executorFactory:    suite.executorFactory,
		repository:         suite.repository,
		audit:              suite.audit,
	}
}

func (suite *TaskCallbacksTestSuite) AssertExpectations() {
	t := suite.T()
	suite.repository.AssertExpectations(t)
	suite.audit.AssertExpectations(t)
	suite.transactionFactory.AssertExpectations(t)
	suite.executorFactory.AssertExpectations(t)
}

func (suite *TaskCallbacksTestSuite) expectLockedTask(ctx context.Context, task models.Task) {
	suite.transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetTaskByCorrelationId", ctx, suite.transaction, suite.correlationId, true).
		Return(task, nil)
}

func (suite *TaskCallbacksTestSuite) Test_ReportStart_nominal() {
	ctx := context.Background()
	suite.expectLockedTask(ctx, suite.pendingTask)
	suite.repository.On("UpdateTaskStatus", ctx, suite.transaction,
		mock.MatchedBy(func(input models.UpdateTaskStatusInput) bool {
			return input.Id == suite.pendingTask.Id &&
				input.Status == models.TaskRunning &&
				input.ExpectedStatus == models.TaskPending &&
				input.StartedAt != nil
		})).Return(true, nil)

	err := suite.makeUsecase().ReportStart(ctx, suite.correlationId)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportStart_redelivered() {
	ctx := context.Background()
	suite.expectLockedTask(ctx, suite.runningTask)

	err := suite.makeUsecase().ReportStart(ctx, suite.correlationId)

	t := suite.T()
	assert.NoError(t, err)
	suite.repository.AssertNotCalled(t, "UpdateTaskStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportStart_unknown_correlation_id() {
	ctx := context.Background()
	suite.transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetTaskByCorrelationId", ctx, suite.transaction, suite.correlationId, true).
		Return(models.Task{}, errors.Wrap(models.NotFoundError, "no task for correlation id"))

	err := suite.makeUsecase().ReportStart(ctx, suite.correlationId)

	assert.ErrorIs(suite.T(), err, models.ErrUnknownTask)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportProgress_nominal() {
	ctx := context.Background()
	suite.expectLockedTask(ctx, suite.runningTask)
	suite.repository.On("UpdateTaskStatus", ctx, suite.transaction,
		mock.MatchedBy(func(input models.UpdateTaskStatusInput) bool {
			return input.Id == suite.runningTask.Id &&
				input.Status == models.TaskRunning &&
				input.ExpectedStatus == models.TaskRunning &&
				input.Progress != nil && *input.Progress == 60
		})).Return(true, nil)

	err := suite.makeUsecase().ReportProgress(ctx, suite.correlationId, 60)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportProgress_regression() {
	ctx := context.Background()
	suite.expectLockedTask(ctx, suite.runningTask)

	err := suite.makeUsecase().ReportProgress(ctx, suite.correlationId, 30)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidProgress)
	suite.repository.AssertNotCalled(t, "UpdateTaskStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportProgress_before_start() {
	ctx := context.Background()
	suite.expectLockedTask(ctx, suite.pendingTask)

	err := suite.makeUsecase().ReportProgress(ctx, suite.correlationId, 10)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	suite.repository.AssertNotCalled(t, "UpdateTaskStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportSuccess_nominal() {
	ctx := context.Background()
	result := models.Document{"rows_imported": 1204}

	suite.expectLockedTask(ctx, suite.runningTask)
	suite.repository.On("UpdateTaskStatus", ctx, suite.transaction,
		mock.MatchedBy(func(input models.UpdateTaskStatusInput) bool {
			return input.Id == suite.runningTask.Id &&
				input.Status == models.TaskSucceeded &&
				input.ExpectedStatus == models.TaskRunning &&
				input.Progress != nil && *input.Progress == 100 &&
				input.CompletedAt != nil
		})).Return(true, nil)
	suite.audit.On("RecordInTransaction", ctx, suite.transaction,
		mock.MatchedBy(func(input models.CreateAuditEntryInput) bool {
			return input.Action == models.AuditTaskSucceeded &&
				input.ActorId == suite.ownerId &&
				input.EntityId == suite.runningTask.Id.String()
		})).Return(uuid.New(), nil)

	err := suite.makeUsecase().ReportSuccess(ctx, suite.correlationId, result)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportSuccess_after_cancellation() {
	ctx := context.Background()
	suite.expectLockedTask(ctx, suite.cancelledTask)

	err := suite.makeUsecase().ReportSuccess(ctx, suite.correlationId, models.Document{"rows": 3})

	t := suite.T()
	assert.NoError(t, err)
	suite.repository.AssertNotCalled(t, "UpdateTaskStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.audit.AssertNotCalled(t, "RecordInTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_ReportFailure_nominal() {
	ctx := context.Background()
	detail := models.Document{"stop_id": "STOP_42"}

	suite.expectLockedTask(ctx, suite.runningTask)
	suite.repository.On("UpdateTaskStatus", ctx, suite.transaction,
		mock.MatchedBy(func(input models.UpdateTaskStatusInput) bool {
			return input.Id == suite.runningTask.Id &&
				input.Status == models.TaskFailed &&
				input.ExpectedStatus == models.TaskRunning &&
				input.ErrorMessage != nil && *input.ErrorMessage == "invalid stop reference" &&
				input.CompletedAt != nil
		})).Return(true, nil)
	suite.audit.On("RecordInTransaction", ctx, suite.transaction,
		mock.MatchedBy(func(input models.CreateAuditEntryInput) bool {
			return input.Action == models.AuditTaskFailed &&
				input.ActorId == suite.ownerId &&
				input.After["error_message"] == "invalid stop reference"
		})).Return(uuid.New(), nil)

	err := suite.makeUsecase().ReportFailure(ctx, suite.correlationId, "invalid stop reference", detail)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *TaskCallbacksTestSuite) Test_AcknowledgeCancellation() {
	ctx := context.Background()

	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("GetTaskByCorrelationId", ctx, suite.transaction, suite.correlationId, false).
		Return(suite.cancelledTask, nil)

	err := suite.makeUsecase().AcknowledgeCancellation(ctx, suite.correlationId)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func TestTaskCallbacks(t *testing.T) {
	suite.Run(t, new(TaskCallbacksTestSuite))
}
