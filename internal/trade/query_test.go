package trade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mtgate/internal/terminal"
)

func rawPosition(ticket int64, symbol string, typeCode int, profit float64, openAt int64) terminal.RawPosition {
	return terminal.RawPosition{
		Ticket:       ticket,
		Time:         openAt,
		Symbol:       symbol,
		Type:         typeCode,
		Volume:       0.1,
		PriceOpen:    1.1,
		PriceCurrent: 1.2,
		Profit:       profit,
	}
}

func TestPositionsUnknownTicketReturnsEmpty(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Positions", mock.Anything, terminal.Filter{Ticket: 123}).Return(nil, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{Ticket: "123"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPositionsNonNumericTicketReturnsEmpty(t *testing.T) {
	gw := new(MockGateway)

	records, err := Positions(context.Background(), gw, QueryFilter{Ticket: "abc"})
	require.NoError(t, err)
	assert.Empty(t, records)
	gw.AssertNotCalled(t, "Positions", mock.Anything, mock.Anything)
}

func TestPositionsTicketWinsOverSymbolAndGroup(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ResolveSymbols", mock.Anything, "EURUSD").Return([]terminal.Symbol{{Name: "EURUSD"}}, nil)
	gw.On("Positions", mock.Anything, terminal.Filter{Ticket: 7}).
		Return([]terminal.RawPosition{rawPosition(7, "EURUSD", 0, 5, 100)}, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{Ticket: "7", Symbol: "EURUSD"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].Ticket)
}

func TestPositionsAmbiguousSymbolPreCheckShortCircuits(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ResolveSymbols", mock.Anything, "USD").
		Return([]terminal.Symbol{{Name: "EURUSD"}, {Name: "GBPUSD"}}, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{Ticket: "7", Symbol: "USD"})
	require.NoError(t, err)
	assert.Empty(t, records)
	gw.AssertNotCalled(t, "Positions", mock.Anything, mock.Anything)
}

func TestPositionsEmptyGroupPreCheckShortCircuits(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ResolveSymbols", mock.Anything, "*XYZ*").Return([]terminal.Symbol{}, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{Ticket: "7", Group: "*XYZ*"})
	require.NoError(t, err)
	assert.Empty(t, records)
	gw.AssertNotCalled(t, "Positions", mock.Anything, mock.Anything)
}

func TestPositionsSymbolWithOrderTypeProjection(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Positions", mock.Anything, terminal.Filter{Symbol: "EURUSD"}).Return([]terminal.RawPosition{
		rawPosition(1, "EURUSD", 0, 5, 100),  // BUY
		rawPosition(2, "EURUSD", 1, -3, 200), // SELL
		rawPosition(3, "EURUSD", 1, 8, 300),  // SELL
	}, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{Symbol: "EURUSD", OrderType: "SELL"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "SELL", rec.Type)
		assert.Equal(t, 1, rec.TypeCode)
	}
}

func TestPositionsUnknownOrderTypeFilterMatchesNothing(t *testing.T) {
	gw := new(MockGateway)

	records, err := Positions(context.Background(), gw, QueryFilter{Symbol: "EURUSD", OrderType: "SELL_HARD"})
	require.NoError(t, err)
	assert.Empty(t, records)
	gw.AssertNotCalled(t, "Positions", mock.Anything, mock.Anything)
}

func TestPositionsSortedByTimeDescending(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Positions", mock.Anything, terminal.Filter{}).Return([]terminal.RawPosition{
		rawPosition(1, "EURUSD", 0, 1, 100),
		rawPosition(2, "EURUSD", 0, 1, 300),
		rawPosition(3, "EURUSD", 0, 1, 200),
	}, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(2), records[0].Ticket)
	assert.Equal(t, int64(3), records[1].Ticket)
	assert.Equal(t, int64(1), records[2].Ticket)
}

func TestPositionsRecordProjection(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Positions", mock.Anything, terminal.Filter{}).Return([]terminal.RawPosition{{
		Ticket:       42,
		Time:         1700000000,
		Symbol:       "XAUUSD",
		Type:         1,
		Volume:       0.5,
		PriceOpen:    4000,
		StopLoss:     4010,
		TakeProfit:   3990,
		PriceCurrent: 3995,
		Profit:       12.5,
		Swap:         -0.3,
	}}, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, int64(42), rec.Ticket)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), rec.Time)
	assert.Equal(t, "SELL", rec.Type)
	assert.Equal(t, 4000.0, rec.OpenPrice)
	assert.Equal(t, 12.5, rec.Profit)
	assert.Equal(t, -0.3, rec.Swap)
}

func TestPositionsUnknownTypeCodeKeepsRow(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Positions", mock.Anything, terminal.Filter{}).
		Return([]terminal.RawPosition{rawPosition(1, "EURUSD", 42, 0, 100)}, nil)

	records, err := Positions(context.Background(), gw, QueryFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "UNKNOWN_42", records[0].Type)
}

func TestPositionsGatewayErrorSurfaces(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Positions", mock.Anything, terminal.Filter{}).Return(nil, terminal.ErrNotConnected)

	_, err := Positions(context.Background(), gw, QueryFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, terminal.ErrNotConnected)
}

func TestPendingOrdersProjection(t *testing.T) {
	gw := new(MockGateway)
	gw.On("PendingOrders", mock.Anything, terminal.Filter{Symbol: "EURUSD"}).Return([]terminal.RawOrder{{
		Ticket:         9,
		TimeSetup:      1700000000,
		TimeExpiration: 1700100000,
		Symbol:         "EURUSD",
		Type:           3, // SELL_LIMIT
		VolumeInitial:  0.2,
		VolumeCurrent:  0.2,
		PriceOpen:      1.2,
		PriceCurrent:   1.1,
	}}, nil)

	records, err := PendingOrders(context.Background(), gw, QueryFilter{Symbol: "EURUSD"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "SELL_LIMIT", rec.Type)
	assert.Equal(t, 0.2, rec.Volume)
	require.NotNil(t, rec.Expiration)
	assert.Equal(t, time.Unix(1700100000, 0).UTC(), *rec.Expiration)
}

func TestPendingOrdersTypeFilter(t *testing.T) {
	gw := new(MockGateway)
	gw.On("PendingOrders", mock.Anything, terminal.Filter{}).Return([]terminal.RawOrder{
		{Ticket: 1, Type: 2, VolumeInitial: 0.1}, // BUY_LIMIT
		{Ticket: 2, Type: 5, VolumeInitial: 0.1}, // SELL_STOP
	}, nil)

	records, err := PendingOrders(context.Background(), gw, QueryFilter{OrderType: "SELL_STOP"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].Ticket)
}
