package usecases

import (
	"context"

	"github.com/opentransit/editor-backend/repositories"
	"github.com/opentransit/editor-backend/usecases/executor_factory"
)

type livenessRepository interface {
	Liveness(ctx context.Context, exec repositories.Executor) error
}

type LivenessUseCase struct {
	executorFactory    executor_factory.ExecutorFactory
	livenessRepository livenessRepository
	appName            string
	apiVersion         string
}

func (u *LivenessUseCase) Liveness(ctx context.Context) error {
	return u.livenessRepository.Liveness(ctx, u.executorFactory.NewExecutor())
}

func (u *LivenessUseCase) Version() (string, string) {
	return u.appName, u.apiVersion
}
