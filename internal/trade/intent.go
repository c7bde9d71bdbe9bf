// Package trade validates trade intents, routes them through the terminal's
// action protocol and shapes live-state queries into stable records.
package trade

import (
	"time"

	"mtgate/internal/terminal"
)

// Intent is a caller-supplied trade request in loose form. Action, OrderType,
// FillPolicy and TimeInForce accept a name, a numeric code or an
// already-typed enum value; canonicalization happens inside Submit.
type Intent struct {
	Action      any        `json:"action"`
	Symbol      string     `json:"symbol"`
	Volume      float64    `json:"volume"`
	OrderType   any        `json:"order_type"`
	Price       float64    `json:"price"`
	StopLoss    float64    `json:"stop_loss"`
	TakeProfit  float64    `json:"take_profit"`
	Deviation   int        `json:"deviation,omitempty"`
	Magic       int64      `json:"magic,omitempty"`
	Comment     string     `json:"comment,omitempty"`
	Position    int64      `json:"position,omitempty"`
	PositionBy  int64      `json:"position_by,omitempty"`
	Order       int64      `json:"order,omitempty"`
	Expiration  *time.Time `json:"expiration,omitempty"`
	FillPolicy  any        `json:"fill_policy,omitempty"`
	TimeInForce any        `json:"time_in_force,omitempty"`
	StopLimit   float64    `json:"stop_limit,omitempty"`
}

// Outcome is the normalized result of one dispatch attempt. It is created
// once per Submit call and never mutated after return.
type Outcome struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	ReturnCode    int               `json:"return_code,omitempty"`
	ReturnMessage string            `json:"return_message,omitempty"`
	Request       *terminal.Request `json:"request,omitempty"`
	Result        *terminal.Result  `json:"result,omitempty"`
	TraceID       string            `json:"trace_id,omitempty"`
}

// reject builds the business-rejection outcome: a specific message, no
// terminal payload. Rejections are expected results, not errors.
func reject(message string) Outcome {
	return Outcome{Success: false, Message: message}
}

// unknownOutcome is the safety net for dispatch paths without a handler.
func unknownOutcome() Outcome {
	return Outcome{
		Success:       false,
		Message:       "Unknown error",
		ReturnCode:    -1,
		ReturnMessage: "Unknown error",
	}
}
