package usecases

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	workerTokenCacheSize = 256
	workerTokenCacheTTL  = time.Minute
)

type workerTokenVerifier interface {
	ValidateWorkerToken(tokenString string) (string, error)
}

// WorkerAuthUseCase authenticates the worker pool on the callback routes.
// Validated tokens are cached for a short TTL: workers report progress at a
// much higher rate than principals log in.
type WorkerAuthUseCase struct {
	jwtRepository workerTokenVerifier
	tokenCache    *expirable.LRU[string, string]
}

func NewWorkerAuthUseCase(jwtRepository workerTokenVerifier) *WorkerAuthUseCase {
	return &WorkerAuthUseCase{
		jwtRepository: jwtRepository,
		tokenCache:    expirable.NewLRU[string, string](workerTokenCacheSize, nil, workerTokenCacheTTL),
	}
}

func (usecase *WorkerAuthUseCase) VerifyWorkerToken(token string) (string, error) {
	if workerId, ok := usecase.tokenCache.Get(token); ok {
		return workerId, nil
	}
	workerId, err := usecase.jwtRepository.ValidateWorkerToken(token)
	if err != nil {
		return "", err
	}
	usecase.tokenCache.Add(token, workerId)
	return workerId, nil
}
