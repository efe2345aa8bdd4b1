package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Invalidator struct {
	mock.Mock
}

func (m *Invalidator) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
