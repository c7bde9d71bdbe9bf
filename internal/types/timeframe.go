package types

// Timeframe is the terminal's chart period constant (TIMEFRAME_*). Minute
// periods equal their length in minutes; hour and larger periods carry flag
// bits in the upper half, so the values are protocol constants rather than
// durations.
type Timeframe int

const (
	TimeframeM1  Timeframe = 1
	TimeframeM2  Timeframe = 2
	TimeframeM3  Timeframe = 3
	TimeframeM4  Timeframe = 4
	TimeframeM5  Timeframe = 5
	TimeframeM6  Timeframe = 6
	TimeframeM10 Timeframe = 10
	TimeframeM12 Timeframe = 12
	TimeframeM15 Timeframe = 15
	TimeframeM20 Timeframe = 20
	TimeframeM30 Timeframe = 30
	TimeframeH1  Timeframe = 16385
	TimeframeH2  Timeframe = 16386
	TimeframeH3  Timeframe = 16387
	TimeframeH4  Timeframe = 16388
	TimeframeH6  Timeframe = 16390
	TimeframeH8  Timeframe = 16392
	TimeframeH12 Timeframe = 16396
	TimeframeD1  Timeframe = 16408
	TimeframeW1  Timeframe = 32769
	TimeframeMN1 Timeframe = 49153
)

var timeframeNames = map[Timeframe]string{
	TimeframeM1:  "M1",
	TimeframeM2:  "M2",
	TimeframeM3:  "M3",
	TimeframeM4:  "M4",
	TimeframeM5:  "M5",
	TimeframeM6:  "M6",
	TimeframeM10: "M10",
	TimeframeM12: "M12",
	TimeframeM15: "M15",
	TimeframeM20: "M20",
	TimeframeM30: "M30",
	TimeframeH1:  "H1",
	TimeframeH2:  "H2",
	TimeframeH3:  "H3",
	TimeframeH4:  "H4",
	TimeframeH6:  "H6",
	TimeframeH8:  "H8",
	TimeframeH12: "H12",
	TimeframeD1:  "D1",
	TimeframeW1:  "W1",
	TimeframeMN1: "MN1",
}

var timeframeCodes = func() map[string]Timeframe {
	m := make(map[string]Timeframe, len(timeframeNames))
	for t, name := range timeframeNames {
		m[name] = t
	}
	return m
}()

func (t Timeframe) String() string {
	if name, ok := timeframeNames[t]; ok {
		return name
	}
	return unknownLabel(int(t))
}

func (t Timeframe) Code() int { return int(t) }

func (t Timeframe) Known() bool {
	_, ok := timeframeNames[t]
	return ok
}

// ParseTimeframe canonicalizes a name (case-insensitive, e.g. "m15"), a
// numeric code or a typed value into a Timeframe.
func ParseTimeframe(v any) (Timeframe, error) {
	switch x := v.(type) {
	case Timeframe:
		if x.Known() {
			return x, nil
		}
	case string:
		if t, ok := timeframeCodes[normalizeName(x)]; ok {
			return t, nil
		}
	default:
		if code, ok := coerceCode(v); ok {
			if t := Timeframe(code); t.Known() {
				return t, nil
			}
		}
	}
	return 0, invalidEnum("timeframe", v)
}
