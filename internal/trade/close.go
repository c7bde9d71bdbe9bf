package trade

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"mtgate/internal/logger"
	"mtgate/internal/types"
)

// ClosePosition closes one open position at market: the opposite deal type,
// full remaining volume, carrying the position ticket.
func (d *Dispatcher) ClosePosition(ctx context.Context, ticket int64) Outcome {
	positions, err := Positions(ctx, d.gw, QueryFilter{Ticket: strconv.FormatInt(ticket, 10)})
	if err != nil {
		return gatewayFailure(err, nil)
	}
	if len(positions) == 0 {
		return reject(fmt.Sprintf("Position %d not found", ticket))
	}
	pos := positions[0]
	return d.Submit(ctx, Intent{
		Action:    types.ActionDeal,
		Symbol:    pos.Symbol,
		Volume:    pos.Volume,
		OrderType: types.OrderType(pos.TypeCode).Opposite(),
		Position:  pos.Ticket,
		Comment:   d.clientTag + " close",
	})
}

// CloseAllProfitable closes every open position with non-negative profit.
// Best-effort: a failed close is skipped and only successful closes are
// counted in the summary.
func (d *Dispatcher) CloseAllProfitable(ctx context.Context) Outcome {
	return d.closeWhere(ctx, QueryFilter{}, func(p PositionRecord) bool {
		return !decimal.NewFromFloat(p.Profit).IsNegative()
	}, "profittable positions")
}

// CloseAllPositions closes every open position, best-effort.
func (d *Dispatcher) CloseAllPositions(ctx context.Context) Outcome {
	return d.closeWhere(ctx, QueryFilter{}, nil, "positions")
}

// CloseAllBySymbol closes every open position on one symbol, best-effort.
func (d *Dispatcher) CloseAllBySymbol(ctx context.Context, symbol string) Outcome {
	return d.closeWhere(ctx, QueryFilter{Symbol: symbol}, nil, symbol+" positions")
}

func (d *Dispatcher) closeWhere(ctx context.Context, filter QueryFilter, keep func(PositionRecord) bool, label string) Outcome {
	positions, err := Positions(ctx, d.gw, filter)
	if err != nil {
		return gatewayFailure(err, nil)
	}
	closed := 0
	for _, pos := range positions {
		if keep != nil && !keep(pos) {
			continue
		}
		out := d.ClosePosition(ctx, pos.Ticket)
		if !out.Success {
			logger.Warnf("close position %d failed: %s", pos.Ticket, out.Message)
			continue
		}
		closed++
	}
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Close %d %s", closed, label),
	}
}
