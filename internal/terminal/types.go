package terminal

import "time"

// Symbol is the subset of terminal symbol metadata the client layer needs.
type Symbol struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Path        string  `json:"path,omitempty"`
	Digits      int     `json:"digits,omitempty"`
	Point       float64 `json:"point,omitempty"`
	VolumeMin   float64 `json:"volume_min,omitempty"`
	VolumeMax   float64 `json:"volume_max,omitempty"`
	VolumeStep  float64 `json:"volume_step,omitempty"`
	Visible     bool    `json:"visible,omitempty"`
}

// Tick is a bid/ask snapshot for one symbol.
type Tick struct {
	Symbol string    `json:"symbol"`
	Bid    float64   `json:"bid"`
	Ask    float64   `json:"ask"`
	Last   float64   `json:"last,omitempty"`
	Time   time.Time `json:"time,omitempty"`
}

// Request mirrors the terminal's trade request structure. Zero-valued
// optional fields are omitted on the wire; the terminal treats absence and
// zero identically for them.
type Request struct {
	Action      int     `json:"action"`
	Symbol      string  `json:"symbol,omitempty"`
	Volume      float64 `json:"volume,omitempty"`
	Type        int     `json:"type"`
	Price       float64 `json:"price,omitempty"`
	StopLimit   float64 `json:"stoplimit,omitempty"`
	StopLoss    float64 `json:"sl,omitempty"`
	TakeProfit  float64 `json:"tp,omitempty"`
	Deviation   int     `json:"deviation,omitempty"`
	Magic       int64   `json:"magic,omitempty"`
	Comment     string  `json:"comment,omitempty"`
	Position    int64   `json:"position,omitempty"`
	PositionBy  int64   `json:"position_by,omitempty"`
	Order       int64   `json:"order,omitempty"`
	Expiration  int64   `json:"expiration,omitempty"` // unix seconds
	TypeTime    int     `json:"type_time,omitempty"`
	TypeFilling int     `json:"type_filling,omitempty"`
}

// Result mirrors the terminal's order send result.
type Result struct {
	Retcode     int     `json:"retcode"`
	Deal        int64   `json:"deal,omitempty"`
	Order       int64   `json:"order,omitempty"`
	Volume      float64 `json:"volume,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Bid         float64 `json:"bid,omitempty"`
	Ask         float64 `json:"ask,omitempty"`
	Comment     string  `json:"comment,omitempty"`
	RequestID   int64   `json:"request_id,omitempty"`
	RetcodeExt  int     `json:"retcode_external,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Filter selects live-state rows terminal-side. At most one of the fields is
// sent; precedence between them is decided by the caller.
type Filter struct {
	Ticket int64  `json:"ticket,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Group  string `json:"group,omitempty"`
}

// DealsQuery selects historical deals by time window and optional scope.
type DealsQuery struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Symbol string    `json:"symbol,omitempty"`
	Group  string    `json:"group,omitempty"`
	Ticket int64     `json:"ticket,omitempty"`
}

// RawPosition is a live open position as the terminal reports it.
type RawPosition struct {
	Ticket       int64   `json:"ticket"`
	Time         int64   `json:"time"` // unix seconds
	Symbol       string  `json:"symbol"`
	Type         int     `json:"type"`
	Volume       float64 `json:"volume"`
	PriceOpen    float64 `json:"price_open"`
	StopLoss     float64 `json:"sl"`
	TakeProfit   float64 `json:"tp"`
	PriceCurrent float64 `json:"price_current"`
	Profit       float64 `json:"profit"`
	Swap         float64 `json:"swap"`
	Magic        int64   `json:"magic,omitempty"`
	Comment      string  `json:"comment,omitempty"`
	Identifier   int64   `json:"identifier,omitempty"`
}

// RawOrder is a live pending order as the terminal reports it.
type RawOrder struct {
	Ticket         int64   `json:"ticket"`
	TimeSetup      int64   `json:"time_setup"` // unix seconds
	TimeExpiration int64   `json:"time_expiration,omitempty"`
	Symbol         string  `json:"symbol"`
	Type           int     `json:"type"`
	State          int     `json:"state,omitempty"`
	VolumeInitial  float64 `json:"volume_initial"`
	VolumeCurrent  float64 `json:"volume_current"`
	PriceOpen      float64 `json:"price_open"`
	StopLoss       float64 `json:"sl"`
	TakeProfit     float64 `json:"tp"`
	PriceCurrent   float64 `json:"price_current"`
	StopLimit      float64 `json:"price_stoplimit,omitempty"`
	Magic          int64   `json:"magic,omitempty"`
	Comment        string  `json:"comment,omitempty"`
}

// RawDeal is a historical deal as the terminal reports it.
type RawDeal struct {
	Ticket     int64   `json:"ticket"`
	Order      int64   `json:"order"`
	Time       int64   `json:"time"` // unix seconds
	Type       int     `json:"type"`
	Entry      int     `json:"entry"`
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	Profit     float64 `json:"profit"`
	Swap       float64 `json:"swap"`
	Commission float64 `json:"commission"`
	Magic      int64   `json:"magic,omitempty"`
	Comment    string  `json:"comment,omitempty"`
}
