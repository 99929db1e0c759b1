package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/levelfourab/s2-go/types"
	"github.com/xhit/go-str2duration/v2"
)

// RetentionPolicy controls when records are trimmed from a stream. The only
// policy available is [RetentionPolicyAge].
type RetentionPolicy interface {
	isRetentionPolicy()
}

// RetentionPolicyAge trims records older than Age. An age of zero keeps
// records forever.
type RetentionPolicyAge struct {
	Age time.Duration
}

func (RetentionPolicyAge) isRetentionPolicy() {}

// RetainFor returns a policy that keeps records for the given duration.
func RetainFor(age time.Duration) RetentionPolicy {
	return RetentionPolicyAge{Age: age}
}

// ParseRetentionPolicy parses an age such as "1d", "1w", "1y" or "1d 12h"
// into a policy.
//
// Parsing is lenient: input that is not a duration results in an age of zero
// rather than an error. Use [ParseRetentionPolicyStrict] to reject it.
func ParseRetentionPolicy(s string) RetentionPolicy {
	policy, err := ParseRetentionPolicyStrict(s)
	if err != nil {
		return RetentionPolicyAge{Age: 0}
	}

	return policy
}

// ParseRetentionPolicyStrict parses an age like [ParseRetentionPolicy], but
// returns an error for input that is not a duration.
//
// An age is one or more parts of a number and a unit, optionally separated
// by whitespace. Units may be abbreviated ("min", "h", "d") or spelled out
// ("minutes", "days"). A month is 30.44 days and a year 365.25 days.
func ParseRetentionPolicyStrict(s string) (RetentionPolicy, error) {
	normalized, err := normalizeDuration(s)
	if err != nil {
		return nil, err
	}

	d, err := str2duration.ParseDuration(normalized)
	if err != nil {
		return nil, err
	}

	return RetentionPolicyAge{Age: d}, nil
}

type durationUnit struct {
	// unit understood by str2duration
	unit string
	// scale is applied to the value before it is passed on in unit
	scale uint64
}

var durationUnits = map[string]durationUnit{
	"ns": {"ns", 1}, "nsec": {"ns", 1}, "nanos": {"ns", 1},
	"us": {"us", 1}, "usec": {"us", 1}, "micros": {"us", 1},
	"ms": {"ms", 1}, "msec": {"ms", 1}, "millis": {"ms", 1},
	"s": {"s", 1}, "sec": {"s", 1}, "secs": {"s", 1}, "second": {"s", 1}, "seconds": {"s", 1},
	"m": {"m", 1}, "min": {"m", 1}, "mins": {"m", 1}, "minute": {"m", 1}, "minutes": {"m", 1},
	"h": {"h", 1}, "hr": {"h", 1}, "hrs": {"h", 1}, "hour": {"h", 1}, "hours": {"h", 1},
	"d": {"d", 1}, "day": {"d", 1}, "days": {"d", 1},
	"w": {"w", 1}, "week": {"w", 1}, "weeks": {"w", 1},
	"M": {"s", 2_630_016}, "month": {"s", 2_630_016}, "months": {"s", 2_630_016},
	"y": {"h", 8766}, "year": {"h", 8766}, "years": {"h", 8766},
}

var durationPart = regexp.MustCompile(`(\d+)\s*([a-zA-Z]+)`)

// normalizeDuration rewrites an age into the compact form str2duration
// parses, such as "1d 12h" into "1d12h" and "1y" into "8766h".
func normalizeDuration(s string) (string, error) {
	var b strings.Builder
	pos := 0
	for _, m := range durationPart.FindAllStringSubmatchIndex(s, -1) {
		if strings.TrimSpace(s[pos:m[0]]) != "" {
			return "", fmt.Errorf("invalid duration %q", s)
		}
		pos = m[1]

		value, name := s[m[2]:m[3]], s[m[4]:m[5]]
		unit, ok := durationUnits[name]
		if !ok {
			return "", fmt.Errorf("unknown unit %q in duration %q", name, s)
		}

		if unit.scale > 1 {
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil || n > math.MaxInt64/unit.scale {
				return "", fmt.Errorf("duration %q is out of range", s)
			}
			value = strconv.FormatUint(n*unit.scale, 10)
		}

		b.WriteString(value)
		b.WriteString(unit.unit)
	}

	if b.Len() == 0 || strings.TrimSpace(s[pos:]) != "" {
		return "", fmt.Errorf("invalid duration %q", s)
	}

	return b.String(), nil
}

func canonicalRetentionPolicy(p RetentionPolicy) types.RetentionPolicy {
	switch policy := p.(type) {
	case RetentionPolicyAge:
		return types.RetentionPolicyAge(policy.Age)
	case *RetentionPolicyAge:
		if policy == nil {
			return nil
		}
		return types.RetentionPolicyAge(policy.Age)
	}

	return nil
}

// FromCanonicalRetentionPolicy converts a service retention policy. A nil
// policy stays nil.
func FromCanonicalRetentionPolicy(p types.RetentionPolicy) RetentionPolicy {
	if age, ok := p.(types.RetentionPolicyAge); ok {
		return RetentionPolicyAge{Age: time.Duration(age)}
	}

	return nil
}
