package racefile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
)

var (
	sixty = decimal.NewFromInt(60)

	intPrefix    = regexp.MustCompile(`^[+-]?\d+`)
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
)

// LapTime is a lap time in seconds. Unset values represent DNF or
// unparseable input and are slower than every set value.
type LapTime = omit.Val[decimal.Decimal]

// ParseLapTime parses m:ss.fff values. Only the leading number of the
// minutes and seconds parts is used, so "1:23.456s" is 83.456.
func ParseLapTime(s string) LapTime {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "DNF") {
		return LapTime{}
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return LapTime{}
	}
	minutes, err := strconv.Atoi(intPrefix.FindString(strings.TrimSpace(parts[0])))
	if err != nil {
		return LapTime{}
	}
	seconds, err := decimal.NewFromString(numberPrefix.FindString(strings.TrimSpace(parts[1])))
	if err != nil {
		return LapTime{}
	}
	return omit.From(decimal.NewFromInt(int64(minutes)).Mul(sixty).Add(seconds))
}

// FasterThan reports whether a is strictly faster than b
func FasterThan(a, b LapTime) bool {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case !aok:
		return false
	case !bok:
		return true
	default:
		return av.LessThan(bv)
	}
}

// SameTime reports whether both values are set and equal
func SameTime(a, b LapTime) bool {
	av, aok := a.Get()
	bv, bok := b.Get()
	return aok && bok && av.Equal(bv)
}
