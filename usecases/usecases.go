package usecases

import (
	"github.com/opentransit/editor-backend/repositories"
	"github.com/opentransit/editor-backend/usecases/executor_factory"
)

type Usecases struct {
	Repositories        repositories.Repositories
	jwtRepository       *repositories.JwtRepository
	appName             string
	apiVersion          string
	tokenLifetimeMinute int
}

type Option func(*options)

type options struct {
	appName             string
	apiVersion          string
	tokenLifetimeMinute int
}

func WithAppName(appName string) Option {
	return func(o *options) {
		o.appName = appName
	}
}

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithTokenLifetimeMinute(lifetime int) Option {
	return func(o *options) {
		o.tokenLifetimeMinute = lifetime
	}
}

func NewUsecases(repos repositories.Repositories, jwtSigningKey []byte, opts ...Option) Usecases {
	o := &options{
		appName:             "editor-backend",
		tokenLifetimeMinute: 60,
	}
	for _, opt := range opts {
		opt(o)
	}
	return Usecases{
		Repositories:        repos,
		jwtRepository:       repositories.NewJwtRepository(jwtSigningKey),
		appName:             o.appName,
		apiVersion:          o.apiVersion,
		tokenLifetimeMinute: o.tokenLifetimeMinute,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewCredentialsUseCase() CredentialsUseCase {
	return CredentialsUseCase{
		transactionFactory:  usecases.NewTransactionFactory(),
		repository:          usecases.Repositories.EditorDbRepository,
		jwtRepository:       usecases.jwtRepository,
		tokenLifetimeMinute: usecases.tokenLifetimeMinute,
	}
}

func (usecases *Usecases) NewWorkerAuthUseCase() *WorkerAuthUseCase {
	return NewWorkerAuthUseCase(usecases.jwtRepository)
}

// NewTaskCallbacksUseCase is credential-less: worker reports are
// authenticated by worker token, not by a principal.
func (usecases *Usecases) NewTaskCallbacksUseCase() TaskCallbacksUseCase {
	return TaskCallbacksUseCase{
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.EditorDbRepository,
		audit:              usecases.newAuditRecorder(),
	}
}

func (usecases *Usecases) newAuditRecorder() *AuditUseCase {
	return &AuditUseCase{
		transactionFactory: usecases.NewTransactionFactory(),
		executorFactory:    usecases.NewExecutorFactory(),
		repository:         usecases.Repositories.EditorDbRepository,
	}
}

func (usecases *Usecases) NewLivenessUseCase() LivenessUseCase {
	return LivenessUseCase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.EditorDbRepository,
		appName:            usecases.appName,
		apiVersion:         usecases.apiVersion,
	}
}
