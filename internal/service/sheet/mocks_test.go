package sheet

import (
	"context"
	"sync"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

var _ stateRepo = &stateRepoMock{}

type stateRepoMock struct {
	LoadFunc  func(ctx context.Context) (domain.State, error)
	SaveFunc  func(ctx context.Context, s domain.State) error
	ClearFunc func(ctx context.Context) error

	calls struct {
		Load []struct {
			Ctx context.Context
		}
		Save []struct {
			Ctx context.Context
			S   domain.State
		}
		Clear []struct {
			Ctx context.Context
		}
	}
	lockLoad  sync.RWMutex
	lockSave  sync.RWMutex
	lockClear sync.RWMutex
}

func (mock *stateRepoMock) Load(ctx context.Context) (domain.State, error) {
	if mock.LoadFunc == nil {
		panic("stateRepoMock.LoadFunc: method is nil but stateRepo.Load was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx)
}

func (mock *stateRepoMock) LoadCalls() []struct{ Ctx context.Context } {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}

func (mock *stateRepoMock) Save(ctx context.Context, s domain.State) error {
	if mock.SaveFunc == nil {
		panic("stateRepoMock.SaveFunc: method is nil but stateRepo.Save was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.State
	}{Ctx: ctx, S: s.Clone()}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, s)
}

func (mock *stateRepoMock) SaveCalls() []struct {
	Ctx context.Context
	S   domain.State
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *stateRepoMock) Clear(ctx context.Context) error {
	if mock.ClearFunc == nil {
		panic("stateRepoMock.ClearFunc: method is nil but stateRepo.Clear was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockClear.Lock()
	mock.calls.Clear = append(mock.calls.Clear, callInfo)
	mock.lockClear.Unlock()
	return mock.ClearFunc(ctx)
}

func (mock *stateRepoMock) ClearCalls() []struct{ Ctx context.Context } {
	mock.lockClear.RLock()
	calls := mock.calls.Clear
	mock.lockClear.RUnlock()
	return calls
}

var _ seedSource = &seedSourceMock{}

type seedSourceMock struct {
	InitialTopicsFunc func(ctx context.Context) ([]domain.Topic, error)

	calls struct {
		InitialTopics []struct {
			Ctx context.Context
		}
	}
	lockInitialTopics sync.RWMutex
}

func (mock *seedSourceMock) InitialTopics(ctx context.Context) ([]domain.Topic, error) {
	if mock.InitialTopicsFunc == nil {
		panic("seedSourceMock.InitialTopicsFunc: method is nil but seedSource.InitialTopics was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockInitialTopics.Lock()
	mock.calls.InitialTopics = append(mock.calls.InitialTopics, callInfo)
	mock.lockInitialTopics.Unlock()
	return mock.InitialTopicsFunc(ctx)
}

func (mock *seedSourceMock) InitialTopicsCalls() []struct{ Ctx context.Context } {
	mock.lockInitialTopics.RLock()
	calls := mock.calls.InitialTopics
	mock.lockInitialTopics.RUnlock()
	return calls
}
