package types

// OrderType is the terminal's order type constant (ORDER_TYPE_*).
type OrderType int

const (
	OrderTypeBuy           OrderType = 0
	OrderTypeSell          OrderType = 1
	OrderTypeBuyLimit      OrderType = 2
	OrderTypeSellLimit     OrderType = 3
	OrderTypeBuyStop       OrderType = 4
	OrderTypeSellStop      OrderType = 5
	OrderTypeBuyStopLimit  OrderType = 6
	OrderTypeSellStopLimit OrderType = 7
	OrderTypeCloseBy       OrderType = 8
)

var orderTypeNames = map[OrderType]string{
	OrderTypeBuy:           "BUY",
	OrderTypeSell:          "SELL",
	OrderTypeBuyLimit:      "BUY_LIMIT",
	OrderTypeSellLimit:     "SELL_LIMIT",
	OrderTypeBuyStop:       "BUY_STOP",
	OrderTypeSellStop:      "SELL_STOP",
	OrderTypeBuyStopLimit:  "BUY_STOP_LIMIT",
	OrderTypeSellStopLimit: "SELL_STOP_LIMIT",
	OrderTypeCloseBy:       "CLOSE_BY",
}

var orderTypeCodes = func() map[string]OrderType {
	m := make(map[string]OrderType, len(orderTypeNames))
	for t, name := range orderTypeNames {
		m[name] = t
	}
	return m
}()

// String returns the canonical name, or "UNKNOWN_<code>" for codes outside
// the enumeration.
func (t OrderType) String() string {
	if name, ok := orderTypeNames[t]; ok {
		return name
	}
	return unknownLabel(int(t))
}

// Code returns the numeric protocol constant.
func (t OrderType) Code() int { return int(t) }

// Known reports whether t is a member of the enumeration.
func (t OrderType) Known() bool {
	_, ok := orderTypeNames[t]
	return ok
}

// IsBuySide reports whether t opens or extends long exposure.
func (t OrderType) IsBuySide() bool {
	switch t {
	case OrderTypeBuy, OrderTypeBuyLimit, OrderTypeBuyStop, OrderTypeBuyStopLimit:
		return true
	}
	return false
}

// IsSellSide reports whether t opens or extends short exposure.
func (t OrderType) IsSellSide() bool {
	switch t {
	case OrderTypeSell, OrderTypeSellLimit, OrderTypeSellStop, OrderTypeSellStopLimit:
		return true
	}
	return false
}

// IsMarket reports whether t executes immediately (BUY or SELL).
func (t OrderType) IsMarket() bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}

// IsPending reports whether t is one of the four plain pending types.
// Stop-limit types are pending too but follow a different request shape,
// so they are excluded here on purpose.
func (t OrderType) IsPending() bool {
	switch t {
	case OrderTypeBuyLimit, OrderTypeSellLimit, OrderTypeBuyStop, OrderTypeSellStop:
		return true
	}
	return false
}

// Opposite returns the order type that closes a position opened by t.
// Only meaningful for market types.
func (t OrderType) Opposite() OrderType {
	if t == OrderTypeBuy {
		return OrderTypeSell
	}
	return OrderTypeBuy
}

// OrderTypeName maps a raw numeric code to its canonical name, falling back
// to "UNKNOWN_<code>" instead of failing.
func OrderTypeName(code int) string {
	return OrderType(code).String()
}

// ParseOrderType canonicalizes a name (case-insensitive), a numeric code or
// an already-typed value into an OrderType.
func ParseOrderType(v any) (OrderType, error) {
	switch x := v.(type) {
	case OrderType:
		if x.Known() {
			return x, nil
		}
	case string:
		if t, ok := orderTypeCodes[normalizeName(x)]; ok {
			return t, nil
		}
	default:
		if code, ok := coerceCode(v); ok {
			if t := OrderType(code); t.Known() {
				return t, nil
			}
		}
	}
	return 0, invalidEnum("order type", v)
}
