package types

// ActionKind is the terminal's trade request action constant (TRADE_ACTION_*).
// The numeric values are not contiguous; they are fixed by the protocol.
type ActionKind int

const (
	ActionDeal    ActionKind = 1  // market order, immediate execution
	ActionPending ActionKind = 5  // pending order placement
	ActionSLTP    ActionKind = 6  // change stop loss / take profit of an open position
	ActionModify  ActionKind = 7  // change parameters of a pending order
	ActionRemove  ActionKind = 8  // delete a pending order
	ActionCloseBy ActionKind = 10 // close a position by an opposite one
)

var actionNames = map[ActionKind]string{
	ActionDeal:    "DEAL",
	ActionPending: "PENDING",
	ActionSLTP:    "SLTP",
	ActionModify:  "MODIFY",
	ActionRemove:  "REMOVE",
	ActionCloseBy: "CLOSE_BY",
}

var actionCodes = func() map[string]ActionKind {
	m := make(map[string]ActionKind, len(actionNames))
	for a, name := range actionNames {
		m[name] = a
	}
	return m
}()

func (a ActionKind) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return unknownLabel(int(a))
}

func (a ActionKind) Code() int { return int(a) }

func (a ActionKind) Known() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction canonicalizes a name (case-insensitive), a numeric code or an
// already-typed value into an ActionKind.
func ParseAction(v any) (ActionKind, error) {
	switch x := v.(type) {
	case ActionKind:
		if x.Known() {
			return x, nil
		}
	case string:
		if a, ok := actionCodes[normalizeName(x)]; ok {
			return a, nil
		}
	default:
		if code, ok := coerceCode(v); ok {
			if a := ActionKind(code); a.Known() {
				return a, nil
			}
		}
	}
	return 0, invalidEnum("action", v)
}
