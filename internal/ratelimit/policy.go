package ratelimit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPolicy = errors.New("invalid rate limit policy")

// Policy 一条限流规则；Limit <= 0 表示不限流
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

func Unlimited(name string) Policy { return Policy{Name: name} }

func (p Policy) Unlimited() bool { return p.Limit <= 0 }

func (p Policy) String() string {
	if p.Unlimited() {
		return p.Name + " unlimited"
	}
	return fmt.Sprintf("%s %d/%s", p.Name, p.Limit, p.Window)
}

var units = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
}

// ParsePolicy 解析 "5/minute"、"100/min"、"10 per minute"；空串或 "unlimited" 为不限流
func ParsePolicy(name, expr string) (Policy, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" || s == "unlimited" {
		return Unlimited(name), nil
	}

	count, unit, ok := strings.Cut(s, "/")
	if !ok {
		count, unit, ok = strings.Cut(s, " per ")
	}
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrInvalidPolicy, expr)
	}

	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n <= 0 {
		return Policy{}, fmt.Errorf("%w: %q: quota must be a positive integer", ErrInvalidPolicy, expr)
	}
	w, ok := units[strings.TrimSpace(unit)]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q: unknown unit", ErrInvalidPolicy, expr)
	}
	return Policy{Name: name, Limit: n, Window: w}, nil
}

func MustParsePolicy(name, expr string) Policy {
	p, err := ParsePolicy(name, expr)
	if err != nil {
		panic(err)
	}
	return p
}
