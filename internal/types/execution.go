package types

// FillPolicy is the terminal's order filling constant (ORDER_FILLING_*).
type FillPolicy int

const (
	FillFOK    FillPolicy = 0 // fill completely or cancel
	FillIOC    FillPolicy = 1 // fill what is available, cancel the rest
	FillReturn FillPolicy = 2 // keep the unfilled remainder working
)

var fillPolicyNames = map[FillPolicy]string{
	FillFOK:    "FOK",
	FillIOC:    "IOC",
	FillReturn: "RETURN",
}

var fillPolicyCodes = func() map[string]FillPolicy {
	m := make(map[string]FillPolicy, len(fillPolicyNames))
	for p, name := range fillPolicyNames {
		m[name] = p
	}
	return m
}()

func (p FillPolicy) String() string {
	if name, ok := fillPolicyNames[p]; ok {
		return name
	}
	return unknownLabel(int(p))
}

func (p FillPolicy) Code() int { return int(p) }

func (p FillPolicy) Known() bool {
	_, ok := fillPolicyNames[p]
	return ok
}

// ParseFillPolicy canonicalizes a name, code or typed value into a FillPolicy.
func ParseFillPolicy(v any) (FillPolicy, error) {
	switch x := v.(type) {
	case FillPolicy:
		if x.Known() {
			return x, nil
		}
	case string:
		if p, ok := fillPolicyCodes[normalizeName(x)]; ok {
			return p, nil
		}
	default:
		if code, ok := coerceCode(v); ok {
			if p := FillPolicy(code); p.Known() {
				return p, nil
			}
		}
	}
	return 0, invalidEnum("fill policy", v)
}

// TimeInForce is the terminal's order lifetime constant (ORDER_TIME_*).
type TimeInForce int

const (
	TimeGTC          TimeInForce = 0 // good till cancelled
	TimeDay          TimeInForce = 1 // valid until end of trading day
	TimeSpecified    TimeInForce = 2 // valid until the given timestamp
	TimeSpecifiedDay TimeInForce = 3 // valid until 23:59:59 of the given day
)

var timeInForceNames = map[TimeInForce]string{
	TimeGTC:          "GTC",
	TimeDay:          "DAY",
	TimeSpecified:    "SPECIFIED",
	TimeSpecifiedDay: "SPECIFIED_DAY",
}

var timeInForceCodes = func() map[string]TimeInForce {
	m := make(map[string]TimeInForce, len(timeInForceNames))
	for t, name := range timeInForceNames {
		m[name] = t
	}
	return m
}()

func (t TimeInForce) String() string {
	if name, ok := timeInForceNames[t]; ok {
		return name
	}
	return unknownLabel(int(t))
}

func (t TimeInForce) Code() int { return int(t) }

func (t TimeInForce) Known() bool {
	_, ok := timeInForceNames[t]
	return ok
}

// ParseTimeInForce canonicalizes a name, code or typed value into a TimeInForce.
func ParseTimeInForce(v any) (TimeInForce, error) {
	switch x := v.(type) {
	case TimeInForce:
		if x.Known() {
			return x, nil
		}
	case string:
		if t, ok := timeInForceCodes[normalizeName(x)]; ok {
			return t, nil
		}
	default:
		if code, ok := coerceCode(v); ok {
			if t := TimeInForce(code); t.Known() {
				return t, nil
			}
		}
	}
	return 0, invalidEnum("time in force", v)
}
