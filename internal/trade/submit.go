package trade

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"mtgate/internal/config"
	"mtgate/internal/logger"
	"mtgate/internal/terminal"
	"mtgate/internal/types"
)

// Recorder receives one entry per dispatch attempt. Recording is
// best-effort; failures are logged and never affect the outcome.
type Recorder interface {
	Record(ctx context.Context, entry RecordEntry) error
}

// RecordEntry is the journal projection of a dispatch.
type RecordEntry struct {
	TraceID   string
	Action    string
	Symbol    string
	OrderType string
	Volume    float64
	Outcome   Outcome
}

// Dispatcher validates trade intents and routes them through the terminal's
// action protocol. One dispatcher serves one gateway.
type Dispatcher struct {
	gw        terminal.Gateway
	clientTag string
	deviation int
	magic     int64
	journal   Recorder
}

// NewDispatcher builds a dispatcher over gw using the trade defaults from cfg.
func NewDispatcher(gw terminal.Gateway, cfg config.TradeConfig) *Dispatcher {
	return &Dispatcher{
		gw:        gw,
		clientTag: cfg.ClientTag,
		deviation: cfg.DefaultDeviation,
		magic:     cfg.Magic,
	}
}

// SetRecorder attaches a dispatch journal.
func (d *Dispatcher) SetRecorder(r Recorder) { d.journal = r }

// Submit validates intent and dispatches it. Validation and domain-rule
// failures come back as non-success outcomes with a specific message; only
// the outcome tells success from rejection, never a Go error.
func (d *Dispatcher) Submit(ctx context.Context, intent Intent) Outcome {
	outcome, action, orderType := d.submit(ctx, intent)
	outcome.TraceID = uuid.NewString()
	if d.journal != nil {
		entry := RecordEntry{
			TraceID:   outcome.TraceID,
			Action:    action.String(),
			Symbol:    intent.Symbol,
			OrderType: orderType.String(),
			Volume:    intent.Volume,
			Outcome:   outcome,
		}
		if err := d.journal.Record(ctx, entry); err != nil {
			logger.Warnf("journal record failed (trace=%s): %v", outcome.TraceID, err)
		}
	}
	return outcome
}

func (d *Dispatcher) submit(ctx context.Context, intent Intent) (Outcome, types.ActionKind, types.OrderType) {
	action, err := types.ParseAction(intent.Action)
	if err != nil {
		return reject("Invalid action"), 0, 0
	}
	orderType, err := types.ParseOrderType(intent.OrderType)
	if err != nil {
		return reject("Invalid order type"), action, 0
	}

	if out, ok := d.checkSymbol(ctx, intent.Symbol); !ok {
		return out, action, orderType
	}
	if intent.Volume <= 0 || intent.Volume > 100 {
		return reject("Invalid volume"), action, orderType
	}
	if !finiteNonNegative(intent.Price) {
		return reject("Invalid price"), action, orderType
	}
	if !finiteNonNegative(intent.StopLoss) || !finiteNonNegative(intent.TakeProfit) {
		return reject("Invalid SL or TP"), action, orderType
	}
	// Ordering against the order price only makes sense for actions that
	// carry one; SLTP/MODIFY levels are judged by the terminal against the
	// live position or order.
	if action == types.ActionDeal || action == types.ActionPending {
		if out, ok := checkStopLevels(orderType, intent.Price, intent.StopLoss, intent.TakeProfit); !ok {
			return out, action, orderType
		}
	}
	if intent.Comment == "" {
		intent.Comment = d.clientTag
	}

	var out Outcome
	switch action {
	case types.ActionDeal:
		out = d.submitDeal(ctx, intent, orderType)
	case types.ActionPending:
		out = d.submitPending(ctx, intent, orderType)
	case types.ActionSLTP:
		out = d.submitSLTP(ctx, intent)
	case types.ActionModify:
		out = d.submitModify(ctx, intent, orderType)
	case types.ActionRemove:
		out = d.submitRemove(ctx, intent)
	case types.ActionCloseBy:
		out = d.submitCloseBy(ctx, intent, orderType)
	default:
		out = unknownOutcome()
	}
	return out, action, orderType
}

// checkSymbol resolves the symbol and makes it tradable in the terminal.
func (d *Dispatcher) checkSymbol(ctx context.Context, symbol string) (Outcome, bool) {
	symbols, err := d.gw.ResolveSymbols(ctx, symbol)
	if err != nil {
		return gatewayFailure(err, nil), false
	}
	if len(symbols) == 0 {
		return reject("Invalid symbol"), false
	}
	if err := d.gw.ActivateSymbol(ctx, symbol); err != nil {
		return reject(fmt.Sprintf("Failed to select %s", symbol)), false
	}
	return Outcome{}, true
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// checkStopLevels enforces direction-aware stop/target ordering. Zero levels
// mean "not set" and are skipped.
func checkStopLevels(orderType types.OrderType, price, sl, tp float64) (Outcome, bool) {
	switch {
	case orderType.IsBuySide():
		if sl != 0 && sl >= price {
			return reject("Stop loss must be below the price"), false
		}
		if tp != 0 && tp <= price {
			return reject("Take profit must be above the price"), false
		}
		if sl != 0 && tp != 0 && sl > tp {
			return reject("Stop loss must be below the take profit"), false
		}
	case orderType.IsSellSide():
		if sl != 0 && sl <= price {
			return reject("Stop loss must be above the price"), false
		}
		if tp != 0 && tp >= price {
			return reject("Take profit must be below the price"), false
		}
		if sl != 0 && tp != 0 && sl < tp {
			return reject("Stop loss must be above the take profit"), false
		}
	}
	return Outcome{}, true
}

func (d *Dispatcher) submitDeal(ctx context.Context, intent Intent, orderType types.OrderType) Outcome {
	if !orderType.IsMarket() {
		return reject("Invalid order type, must be BUY or SELL")
	}
	req := terminal.Request{
		Action:      types.ActionDeal.Code(),
		Symbol:      intent.Symbol,
		Volume:      intent.Volume,
		Type:        orderType.Code(),
		Price:       intent.Price,
		StopLoss:    intent.StopLoss,
		TakeProfit:  intent.TakeProfit,
		Deviation:   d.deviation,
		Magic:       d.resolveMagic(intent),
		Comment:     intent.Comment,
		Position:    intent.Position,
		TypeFilling: d.resolveFill(intent).Code(),
	}
	return d.send(ctx, req)
}

func (d *Dispatcher) submitPending(ctx context.Context, intent Intent, orderType types.OrderType) Outcome {
	if !orderType.IsPending() {
		return reject("Invalid order type, must be BUY_LIMIT, SELL_LIMIT, BUY_STOP, or SELL_STOP")
	}

	// With a live quote, catch prices the terminal would bounce anyway.
	// Without one the terminal stays authoritative and the check is skipped.
	tick, err := d.gw.Quote(ctx, intent.Symbol)
	if err != nil {
		logger.Debugf("quote unavailable for %s, skipping market price check: %v", intent.Symbol, err)
		tick = nil
	}
	if tick != nil {
		switch orderType {
		case types.OrderTypeBuyLimit:
			if intent.Price > tick.Ask {
				return reject("Invalid price, must be above current ask")
			}
		case types.OrderTypeSellLimit:
			if intent.Price < tick.Bid {
				return reject("Invalid price, must be below current bid")
			}
		case types.OrderTypeBuyStop:
			if intent.Price < tick.Ask {
				return reject("Invalid price, must be above current ask")
			}
		case types.OrderTypeSellStop:
			if intent.Price > tick.Bid {
				return reject("Invalid price, must be below current bid")
			}
		}
	}

	deviation := intent.Deviation
	if deviation <= 0 {
		deviation = d.deviation
	}
	req := terminal.Request{
		Action:      types.ActionPending.Code(),
		Symbol:      intent.Symbol,
		Volume:      intent.Volume,
		Type:        orderType.Code(),
		Price:       intent.Price,
		StopLoss:    intent.StopLoss,
		TakeProfit:  intent.TakeProfit,
		Deviation:   deviation,
		Magic:       d.resolveMagic(intent),
		Comment:     intent.Comment,
		TypeFilling: d.resolveFill(intent).Code(),
	}
	applyExpiration(&req, intent)
	return d.send(ctx, req)
}

func (d *Dispatcher) submitSLTP(ctx context.Context, intent Intent) Outcome {
	if intent.Position == 0 {
		return reject("Position ticket is required")
	}
	if intent.StopLoss == 0 && intent.TakeProfit == 0 {
		return reject("Stop loss or take profit is required")
	}
	req := terminal.Request{
		Action:     types.ActionSLTP.Code(),
		Symbol:     intent.Symbol,
		Position:   intent.Position,
		StopLoss:   intent.StopLoss,
		TakeProfit: intent.TakeProfit,
	}
	return d.send(ctx, req)
}

func (d *Dispatcher) submitModify(ctx context.Context, intent Intent, orderType types.OrderType) Outcome {
	if intent.Order == 0 {
		return reject("Order ticket is required")
	}
	req := terminal.Request{
		Action:     types.ActionModify.Code(),
		Order:      intent.Order,
		Type:       orderType.Code(),
		Price:      intent.Price,
		StopLoss:   intent.StopLoss,
		TakeProfit: intent.TakeProfit,
		StopLimit:  intent.StopLimit,
	}
	applyExpiration(&req, intent)
	return d.send(ctx, req)
}

func (d *Dispatcher) submitRemove(ctx context.Context, intent Intent) Outcome {
	if intent.Order == 0 {
		return reject("Order ticket is required")
	}
	req := terminal.Request{
		Action: types.ActionRemove.Code(),
		Order:  intent.Order,
	}
	return d.send(ctx, req)
}

func (d *Dispatcher) submitCloseBy(ctx context.Context, intent Intent, orderType types.OrderType) Outcome {
	if intent.Position == 0 || intent.PositionBy == 0 {
		return reject("Position and opposite position tickets are required")
	}
	req := terminal.Request{
		Action:     types.ActionCloseBy.Code(),
		Type:       orderType.Code(),
		Position:   intent.Position,
		PositionBy: intent.PositionBy,
	}
	return d.send(ctx, req)
}

// applyExpiration sets the order lifetime: SPECIFIED with the given
// timestamp when an expiration is supplied, GTC otherwise. An explicit
// time-in-force override wins when it parses.
func applyExpiration(req *terminal.Request, intent Intent) {
	if intent.TimeInForce != nil {
		if tif, err := types.ParseTimeInForce(intent.TimeInForce); err == nil {
			req.TypeTime = tif.Code()
			if intent.Expiration != nil {
				req.Expiration = intent.Expiration.Unix()
			}
			return
		}
	}
	if intent.Expiration != nil {
		req.TypeTime = types.TimeSpecified.Code()
		req.Expiration = intent.Expiration.Unix()
		return
	}
	req.TypeTime = types.TimeGTC.Code()
}

// resolveFill honors an explicit fill-policy override; FOK otherwise.
func (d *Dispatcher) resolveFill(intent Intent) types.FillPolicy {
	if intent.FillPolicy != nil {
		if policy, err := types.ParseFillPolicy(intent.FillPolicy); err == nil {
			return policy
		}
	}
	return types.FillFOK
}

func (d *Dispatcher) resolveMagic(intent Intent) int64 {
	if intent.Magic != 0 {
		return intent.Magic
	}
	return d.magic
}

// send performs the gateway submission and normalizes its result.
func (d *Dispatcher) send(ctx context.Context, req terminal.Request) Outcome {
	result, err := d.gw.Submit(ctx, req)
	if err != nil {
		return gatewayFailure(err, &req)
	}
	return Outcome{
		Success: true,
		Message: "Order sent successfully",
		Request: &req,
		Result:  result,
	}
}

// gatewayFailure shapes a terminal or transport failure into a non-success
// outcome carrying the terminal's code and description when present.
func gatewayFailure(err error, req *terminal.Request) Outcome {
	var terr *terminal.TerminalError
	if errors.As(err, &terr) {
		return Outcome{
			Success:       false,
			Message:       fmt.Sprintf("Error %d: %s", terr.Code, terr.Description),
			ReturnCode:    terr.Code,
			ReturnMessage: terr.Description,
			Request:       req,
		}
	}
	return Outcome{
		Success: false,
		Message: err.Error(),
		Request: req,
	}
}
