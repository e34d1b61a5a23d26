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

type TaskUsecaseTestSuite struct {
	suite.Suite
	enforceSecurity    *mocks.EnforceSecurity
	repository         *mocks.TaskRepository
	taskQueue          *mocks.TaskQueueRepository
	audit              *mocks.AuditRecorder
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	transaction        *mocks.Transaction
	credentials        models.Credentials

	agencyId        uuid.UUID
	principalId     uuid.UUID
	taskId          uuid.UUID
	pendingTask     models.Task
	succeededTask   models.Task
	repositoryError error
	securityError   error
}

func (suite *TaskUsecaseTestSuite) SetupTest() {
	suite.enforceSecurity = new(mocks.EnforceSecurity)
	suite.repository = new(mocks.TaskRepository)
	suite.taskQueue = new(mocks.TaskQueueRepository)
	suite.audit = new(mocks.AuditRecorder)
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)

	suite.agencyId = uuid.MustParse("25ab6323-1657-4a52-923a-ef6983fe4532")
	suite.principalId = uuid.MustParse("0ae6fda7-f7b3-4218-9fc3-4efa329432a7")
	suite.taskId = uuid.MustParse("5b33cde3-0b53-4e21-8d07-bf395f376a1c")
	suite.pendingTask = models.Task{
		Id:            suite.taskId,
		CorrelationId: "f41a3b74-92b2-4a48-b160-f89bfee549b2",
		Name:          "nightly export",
		Type:          models.TaskTypeExport,
		OwnerId:       suite.principalId,
		AgencyId:      &suite.agencyId,
		Status:        models.TaskPending,
	}
	suite.succeededTask = suite.pendingTask
	suite.succeededTask.Status = models.TaskSucceeded

	suite.credentials = models.Credentials{
		ActorIdentity: models.Identity{
			PrincipalId: suite.principalId,
			Email:       "rider@transit.example",
		},
		Principal: models.Principal{
			Id:     suite.principalId,
			Grants: map[uuid.UUID]models.Role{suite.agencyId: models.EDITOR},
		},
	}
	suite.repositoryError = errors.New("some repository error")
	suite.securityError = errors.New("some security error")
}

func (suite *TaskUsecaseTestSuite) makeUsecase() *TaskUseCase {
	return &TaskUseCase{
		enforceSecurity:    suite.enforceSecurity,
		transactionFactory: suite.transactionFactory,
		executorFactory:    suite.executorFactory,
		repository:         suite.repository,
		taskQueue:          suite.taskQueue,
		audit:              suite.audit,
		credentials:        suite.credentials,
	}
}

func (suite *TaskUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.enforceSecurity.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.taskQueue.AssertExpectations(t)
	suite.audit.AssertExpectations(t)
	suite.transactionFactory.AssertExpectations(t)
	suite.executorFactory.AssertExpectations(t)
}

func (suite *TaskUsecaseTestSuite) Test_CreateTask_nominal() {
	t := suite.T()
	ctx := context.Background()

	input := models.CreateTaskInput{
		Name:     "nightly export",
		Type:     models.TaskTypeExport,
		AgencyId: &suite.agencyId,
	}
	expectedInput := input
	expectedInput.OwnerId = suite.principalId

	suite.enforceSecurity.On("CreateTask", expectedInput).Return(nil)
	suite.transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("CreateTask", ctx, suite.transaction, expectedInput,
		mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)
	suite.repository.On("GetTaskById", ctx, suite.transaction,
		mock.AnythingOfType("uuid.UUID")).Return(suite.pendingTask, nil)
	suite.taskQueue.On("EnqueueTaskDispatch", ctx, suite.transaction, suite.pendingTask).Return(nil)

	task, err := suite.makeUsecase().CreateTask(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, suite.pendingTask, task)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_CreateTask_unknown_type() {
	_, err := suite.makeUsecase().CreateTask(context.Background(), models.CreateTaskInput{
		Name: "mystery",
		Type: models.TaskType("teleport"),
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.BadParameterError)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_CreateTask_security_error() {
	input := models.CreateTaskInput{
		Name:     "nightly export",
		Type:     models.TaskTypeExport,
		AgencyId: &suite.agencyId,
	}
	expectedInput := input
	expectedInput.OwnerId = suite.principalId

	suite.enforceSecurity.On("CreateTask", expectedInput).Return(suite.securityError)

	_, err := suite.makeUsecase().CreateTask(context.Background(), input)

	t := suite.T()
	assert.ErrorIs(t, err, suite.securityError)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_CreateTask_idempotent_replay() {
	t := suite.T()
	ctx := context.Background()

	input := models.CreateTaskInput{
		Name:           "nightly export",
		Type:           models.TaskTypeExport,
		AgencyId:       &suite.agencyId,
		IdempotencyKey: "export-2026-08-30",
	}
	expectedInput := input
	expectedInput.OwnerId = suite.principalId

	suite.enforceSecurity.On("CreateTask", expectedInput).Return(nil)
	suite.transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetTaskByIdempotencyKey", ctx, suite.transaction,
		suite.principalId, "export-2026-08-30").Return(&suite.pendingTask, nil)

	task, err := suite.makeUsecase().CreateTask(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, suite.pendingTask, task)
	suite.repository.AssertNotCalled(t, "CreateTask",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.taskQueue.AssertNotCalled(t, "EnqueueTaskDispatch",
		mock.Anything, mock.Anything, mock.Anything)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_GetTask_nominal() {
	t := suite.T()
	ctx := context.Background()

	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("GetTaskById", ctx, suite.transaction, suite.taskId).
		Return(suite.pendingTask, nil)
	suite.enforceSecurity.On("ReadTask", suite.pendingTask).Return(nil)

	task, err := suite.makeUsecase().GetTask(ctx, suite.taskId)

	assert.NoError(t, err)
	assert.Equal(t, suite.pendingTask, task)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_GetTask_security_error() {
	ctx := context.Background()

	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("GetTaskById", ctx, suite.transaction, suite.taskId).
		Return(suite.pendingTask, nil)
	suite.enforceSecurity.On("ReadTask", suite.pendingTask).Return(suite.securityError)

	_, err := suite.makeUsecase().GetTask(ctx, suite.taskId)

	t := suite.T()
	assert.ErrorIs(t, err, suite.securityError)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_ListTasks_applies_pagination_defaults() {
	t := suite.T()
	ctx := context.Background()

	filters := models.ListTasksFilters{AgencyId: &suite.agencyId}
	expectedPagination := models.PaginationAndSorting{
		Limit: models.DefaultPaginationLimit,
		Order: models.SortingOrderDesc,
	}

	suite.enforceSecurity.On("ListTasks", filters).Return(nil)
	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("ListTasks", ctx, suite.transaction, filters, expectedPagination).
		Return([]models.Task{suite.pendingTask}, nil)

	tasks, err := suite.makeUsecase().ListTasks(ctx, filters, models.PaginationAndSorting{})

	assert.NoError(t, err)
	assert.Equal(t, []models.Task{suite.pendingTask}, tasks)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_CancelTask_nominal() {
	t := suite.T()
	ctx := context.Background()

	cancelledTask := suite.pendingTask
	cancelledTask.Status = models.TaskCancelled
	provenance := models.AuditProvenance{
		Origin:    "203.0.113.7",
		UserAgent: "editor-frontend/2.4",
	}

	suite.transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetTaskByIdForUpdate", ctx, suite.transaction, suite.taskId).
		Return(suite.pendingTask, nil)
	suite.enforceSecurity.On("CancelTask", suite.pendingTask).Return(nil)
	suite.repository.On("UpdateTaskStatus", ctx, suite.transaction,
		mock.MatchedBy(func(input models.UpdateTaskStatusInput) bool {
			return input.Id == suite.taskId &&
				input.Status == models.TaskCancelled &&
				input.ExpectedStatus == models.TaskPending &&
				input.CompletedAt != nil
		})).Return(true, nil)
	suite.audit.On("RecordInTransaction", ctx, suite.transaction,
		mock.MatchedBy(func(input models.CreateAuditEntryInput) bool {
			return input.Action == models.AuditTaskCancelled &&
				input.ActorId == suite.principalId &&
				input.EntityType == "task" &&
				input.EntityId == suite.taskId.String() &&
				input.Provenance != nil &&
				*input.Provenance == provenance
		})).Return(uuid.New(), nil)
	suite.repository.On("GetTaskById", ctx, suite.transaction, suite.taskId).
		Return(cancelledTask, nil)
	suite.taskQueue.On("EnqueueTaskCancelNotice", ctx, suite.pendingTask.CorrelationId).Return(nil)

	task, err := suite.makeUsecase().CancelTask(ctx, suite.taskId, &provenance)

	assert.NoError(t, err)
	assert.Equal(t, cancelledTask, task)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_CancelTask_already_terminal() {
	ctx := context.Background()

	suite.transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetTaskByIdForUpdate", ctx, suite.transaction, suite.taskId).
		Return(suite.succeededTask, nil)
	suite.enforceSecurity.On("CancelTask", suite.succeededTask).Return(nil)

	_, err := suite.makeUsecase().CancelTask(ctx, suite.taskId, nil)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	suite.repository.AssertNotCalled(t, "UpdateTaskStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.audit.AssertNotCalled(t, "RecordInTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.taskQueue.AssertNotCalled(t, "EnqueueTaskCancelNotice", mock.Anything, mock.Anything)

	suite.AssertExpectations()
}

func (suite *TaskUsecaseTestSuite) Test_CancelTask_security_error() {
	ctx := context.Background()

	suite.transactionFactory.On("Transaction", ctx, mock.Anything).Return(nil)
	suite.repository.On("GetTaskByIdForUpdate", ctx, suite.transaction, suite.taskId).
		Return(suite.pendingTask, nil)
	suite.enforceSecurity.On("CancelTask", suite.pendingTask).Return(suite.securityError)

	_, err := suite.makeUsecase().CancelTask(ctx, suite.taskId, nil)

	t := suite.T()
	assert.ErrorIs(t, err, suite.securityError)

	suite.AssertExpectations()
}

func TestTaskUsecase(t *testing.T) {
	suite.Run(t, new(TaskUsecaseTestSuite))
}
