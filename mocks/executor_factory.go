package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/opentransit/editor-backend/repositories"
)

type ExecutorFactory struct {
	mock.Mock
}

func (m *ExecutorFactory) NewExecutor() repositories.Executor {
	args := m.Called()
	return args.Get(0).(repositories.Executor)
}
