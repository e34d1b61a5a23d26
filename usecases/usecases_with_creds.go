package usecases

import (
	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/usecases/security"
)

type UsecasesWithCreds struct {
	Usecases
	Credentials models.Credentials
}

func (usecases *UsecasesWithCreds) NewEnforceSecurity() security.EnforceSecurity {
	return &security.EnforceSecurityImpl{
		Credentials: usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceTaskSecurity() security.EnforceSecurityTask {
	return &security.EnforceSecurityTaskImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceAuditSecurity() security.EnforceSecurityAudit {
	return &security.EnforceSecurityAuditImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewTaskUseCase() TaskUseCase {
	return TaskUseCase{
		enforceSecurity:    usecases.NewEnforceTaskSecurity(),
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.EditorDbRepository,
		taskQueue:          usecases.Repositories.TaskQueueRepository,
		audit:              usecases.newAuditRecorder(),
		credentials:        usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewAuditUseCase() AuditUseCase {
	return AuditUseCase{
		enforceSecurity:    usecases.NewEnforceAuditSecurity(),
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.EditorDbRepository,
	}
}
