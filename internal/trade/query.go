package trade

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"mtgate/internal/terminal"
	"mtgate/internal/types"
)

// QueryFilter selects live-state rows. Precedence: Ticket, then Symbol, then
// Group, then everything. When Ticket is combined with Symbol or Group those
// act as an existence pre-check only: an ambiguous symbol or an empty group
// short-circuits to an empty result. OrderType is applied as a post-fetch
// projection filter and accepts a name, a code or a typed value.
type QueryFilter struct {
	Ticket    string `json:"ticket,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	Group     string `json:"group,omitempty"`
	OrderType any    `json:"order_type,omitempty"`
}

// PositionRecord is the normalized row shape of a live open position.
type PositionRecord struct {
	Ticket       int64     `json:"id"`
	Time         time.Time `json:"time"`
	Symbol       string    `json:"symbol"`
	Type         string    `json:"type"`
	TypeCode     int       `json:"type_code"`
	Volume       float64   `json:"volume"`
	OpenPrice    float64   `json:"open"`
	StopLoss     float64   `json:"stop_loss"`
	TakeProfit   float64   `json:"take_profit"`
	CurrentPrice float64   `json:"current_price"`
	Profit       float64   `json:"profit"`
	Swap         float64   `json:"swap"`
}

// OrderRecord is the normalized row shape of a live pending order.
type OrderRecord struct {
	Ticket       int64      `json:"id"`
	Time         time.Time  `json:"time"`
	Symbol       string     `json:"symbol"`
	Type         string     `json:"type"`
	TypeCode     int        `json:"type_code"`
	State        int        `json:"state"`
	Volume       float64    `json:"volume"`
	OpenPrice    float64    `json:"open"`
	StopLoss     float64    `json:"stop_loss"`
	TakeProfit   float64    `json:"take_profit"`
	CurrentPrice float64    `json:"current_price"`
	Expiration   *time.Time `json:"expiration,omitempty"`
}

// Positions fetches and filters live open positions. Absence of matches is
// an empty result, never an error; only gateway failures surface as errors.
func Positions(ctx context.Context, gw terminal.Gateway, filter QueryFilter) ([]PositionRecord, error) {
	gwFilter, typeFilter, ok, err := resolveQuery(ctx, gw, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []PositionRecord{}, nil
	}
	raw, err := gw.Positions(ctx, gwFilter)
	if err != nil {
		return nil, err
	}
	records := make([]PositionRecord, 0, len(raw))
	for _, p := range raw {
		if typeFilter != nil && types.OrderType(p.Type) != *typeFilter {
			continue
		}
		records = append(records, PositionRecord{
			Ticket:       p.Ticket,
			Time:         time.Unix(p.Time, 0).UTC(),
			Symbol:       p.Symbol,
			Type:         types.OrderTypeName(p.Type),
			TypeCode:     p.Type,
			Volume:       p.Volume,
			OpenPrice:    p.PriceOpen,
			StopLoss:     p.StopLoss,
			TakeProfit:   p.TakeProfit,
			CurrentPrice: p.PriceCurrent,
			Profit:       p.Profit,
			Swap:         p.Swap,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

// PendingOrders fetches and filters live pending orders under the same
// contract as Positions.
func PendingOrders(ctx context.Context, gw terminal.Gateway, filter QueryFilter) ([]OrderRecord, error) {
	gwFilter, typeFilter, ok, err := resolveQuery(ctx, gw, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []OrderRecord{}, nil
	}
	raw, err := gw.PendingOrders(ctx, gwFilter)
	if err != nil {
		return nil, err
	}
	records := make([]OrderRecord, 0, len(raw))
	for _, o := range raw {
		if typeFilter != nil && types.OrderType(o.Type) != *typeFilter {
			continue
		}
		volume := o.VolumeCurrent
		if volume == 0 {
			volume = o.VolumeInitial
		}
		rec := OrderRecord{
			Ticket:       o.Ticket,
			Time:         time.Unix(o.TimeSetup, 0).UTC(),
			Symbol:       o.Symbol,
			Type:         types.OrderTypeName(o.Type),
			TypeCode:     o.Type,
			State:        o.State,
			Volume:       volume,
			OpenPrice:    o.PriceOpen,
			StopLoss:     o.StopLoss,
			TakeProfit:   o.TakeProfit,
			CurrentPrice: o.PriceCurrent,
		}
		if o.TimeExpiration > 0 {
			exp := time.Unix(o.TimeExpiration, 0).UTC()
			rec.Expiration = &exp
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

// resolveQuery turns a QueryFilter into the gateway filter plus an optional
// order-type projection filter. ok=false short-circuits to an empty result.
func resolveQuery(ctx context.Context, gw terminal.Gateway, filter QueryFilter) (terminal.Filter, *types.OrderType, bool, error) {
	var typeFilter *types.OrderType
	if filter.OrderType != nil {
		parsed, err := types.ParseOrderType(filter.OrderType)
		if err != nil {
			// An unknown type can match nothing.
			return terminal.Filter{}, nil, false, nil
		}
		typeFilter = &parsed
	}

	ticket := strings.TrimSpace(filter.Ticket)
	if ticket != "" {
		// Symbol/group act as an existence pre-check when a ticket is given.
		if s := strings.TrimSpace(filter.Symbol); s != "" {
			symbols, err := gw.ResolveSymbols(ctx, s)
			if err != nil {
				return terminal.Filter{}, nil, false, err
			}
			if len(symbols) != 1 {
				return terminal.Filter{}, nil, false, nil
			}
		}
		if g := strings.TrimSpace(filter.Group); g != "" {
			symbols, err := gw.ResolveSymbols(ctx, g)
			if err != nil {
				return terminal.Filter{}, nil, false, err
			}
			if len(symbols) == 0 {
				return terminal.Filter{}, nil, false, nil
			}
		}
		id, err := strconv.ParseInt(ticket, 10, 64)
		if err != nil {
			// Non-numeric ticket text matches nothing.
			return terminal.Filter{}, nil, false, nil
		}
		return terminal.Filter{Ticket: id}, typeFilter, true, nil
	}
	if s := strings.TrimSpace(filter.Symbol); s != "" {
		return terminal.Filter{Symbol: s}, typeFilter, true, nil
	}
	if g := strings.TrimSpace(filter.Group); g != "" {
		return terminal.Filter{Group: g}, typeFilter, true, nil
	}
	return terminal.Filter{}, typeFilter, true, nil
}
