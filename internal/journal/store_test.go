package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtgate/internal/terminal"
	"mtgate/internal/trade"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry := trade.RecordEntry{
		TraceID:   "trace-1",
		Action:    "DEAL",
		Symbol:    "XAUUSD",
		OrderType: "SELL",
		Volume:    0.1,
		Outcome: trade.Outcome{
			Success: true,
			Message: "Order sent successfully",
			Request: &terminal.Request{Action: 1, Symbol: "XAUUSD", Volume: 0.1, Type: 1, Price: 4000},
			Result:  &terminal.Result{Retcode: 10009, Order: 555},
		},
	}
	require.NoError(t, store.Record(ctx, entry))

	rows, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "trace-1", row.TraceID)
	assert.Equal(t, "DEAL", row.Action)
	assert.Equal(t, "XAUUSD", row.Symbol)
	assert.True(t, row.Success)
	assert.Contains(t, string(row.RequestJSON), `"symbol":"XAUUSD"`)
	assert.Contains(t, string(row.ResultJSON), `"retcode":10009`)
	assert.WithinDuration(t, time.Now(), row.CreatedAt, time.Minute)
}

func TestRecordRejectionWithoutPayloads(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry := trade.RecordEntry{
		TraceID:   "trace-2",
		Action:    "DEAL",
		Symbol:    "NOPE",
		OrderType: "BUY",
		Volume:    0.1,
		Outcome:   trade.Outcome{Success: false, Message: "Invalid symbol"},
	}
	require.NoError(t, store.Record(ctx, entry))

	rows, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Success)
	assert.Equal(t, "Invalid symbol", rows[0].Message)
	assert.Empty(t, rows[0].RequestJSON)
}

func TestBySymbolFiltersAndOrders(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, entry := range []trade.RecordEntry{
		{TraceID: "a", Symbol: "EURUSD", Action: "DEAL", Outcome: trade.Outcome{Success: true, Message: "ok"}},
		{TraceID: "b", Symbol: "XAUUSD", Action: "DEAL", Outcome: trade.Outcome{Success: true, Message: "ok"}},
		{TraceID: "c", Symbol: "EURUSD", Action: "PENDING", Outcome: trade.Outcome{Success: false, Message: "Invalid volume"}},
	} {
		require.NoError(t, store.Record(ctx, entry))
	}

	rows, err := store.BySymbol(ctx, "EURUSD", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "EURUSD", row.Symbol)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
