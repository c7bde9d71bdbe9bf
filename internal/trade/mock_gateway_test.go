package trade

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mtgate/internal/terminal"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ResolveSymbols(ctx context.Context, pattern string) ([]terminal.Symbol, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]terminal.Symbol), args.Error(1)
}

func (m *MockGateway) ActivateSymbol(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockGateway) Quote(ctx context.Context, symbol string) (*terminal.Tick, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*terminal.Tick), args.Error(1)
}

func (m *MockGateway) Submit(ctx context.Context, req terminal.Request) (*terminal.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*terminal.Result), args.Error(1)
}

func (m *MockGateway) Positions(ctx context.Context, filter terminal.Filter) ([]terminal.RawPosition, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]terminal.RawPosition), args.Error(1)
}

func (m *MockGateway) PendingOrders(ctx context.Context, filter terminal.Filter) ([]terminal.RawOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]terminal.RawOrder), args.Error(1)
}

func (m *MockGateway) Deals(ctx context.Context, query terminal.DealsQuery) ([]terminal.RawDeal, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]terminal.RawDeal), args.Error(1)
}

func (m *MockGateway) Connected() bool {
	args := m.Called()
	return args.Bool(0)
}
