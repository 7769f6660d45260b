package seeder

import (
	"context"
	"sync"

	"github.com/heartmarshall/dndsheet/internal/app/seeder/dataset"
)

var _ datasetSource = &datasetSourceMock{}

type datasetSourceMock struct {
	LoadFunc func(ctx context.Context) (*dataset.Dataset, error)

	calls struct {
		Load []struct {
			Ctx context.Context
		}
	}
	lockLoad sync.RWMutex
}

func (mock *datasetSourceMock) Load(ctx context.Context) (*dataset.Dataset, error) {
	if mock.LoadFunc == nil {
		panic("datasetSourceMock.LoadFunc: method is nil but datasetSource.Load was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx)
}

func (mock *datasetSourceMock) LoadCalls() []struct{ Ctx context.Context } {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}
