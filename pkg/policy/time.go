package policy

import "fmt"

const urgentMinutes = 15

type AllowanceStatus string

const (
	AllowancePlenty   AllowanceStatus = "plenty"
	AllowanceLow      AllowanceStatus = "low"
	AllowanceCritical AllowanceStatus = "critical"
)

type Breakdown struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// PaddedMinutes pads to two digits only when paired with a non-zero hour.
func (b Breakdown) PaddedMinutes() string {
	if b.Hours > 0 {
		return fmt.Sprintf("%02d", b.Minutes)
	}
	return fmt.Sprintf("%d", b.Minutes)
}

func (b Breakdown) String() string {
	if b.Hours > 0 {
		return fmt.Sprintf("%dh %dm", b.Hours, b.Minutes)
	}
	return fmt.Sprintf("%dm", b.Minutes)
}

func SplitMinutes(minutes int) (Breakdown, error) {
	if minutes < 0 {
		return Breakdown{}, invalidf("minutes must not be negative, got %d", minutes)
	}
	return Breakdown{Hours: minutes / 60, Minutes: minutes % 60}, nil
}

// FormatMinutes renders 0 as "0m", 90 as "1h 30m" and 125 as "2h 5m".
func FormatMinutes(minutes int) (string, error) {
	b, err := SplitMinutes(minutes)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

type Allowance struct {
	Remaining        Breakdown       `json:"remaining"`
	Used             Breakdown       `json:"used"`
	RemainingMinutes int             `json:"remaining_minutes"`
	UsedMinutes      int             `json:"used_minutes"`
	DailyLimit       int             `json:"daily_limit"`
	PercentRemaining float64         `json:"percent_remaining"`
	Status           AllowanceStatus `json:"status"`
	Urgent           bool            `json:"urgent"`
}

func validateAllowance(remaining, limit int) error {
	if limit < 0 {
		return invalidf("daily limit must not be negative, got %d", limit)
	}
	if remaining < 0 {
		return invalidf("remaining minutes must not be negative, got %d", remaining)
	}
	if remaining > limit {
		return invalidf("remaining minutes %d exceed daily limit %d", remaining, limit)
	}
	return nil
}

// PercentRemaining is 0 when the limit is 0.
func PercentRemaining(remaining, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return float64(remaining) / float64(limit) * 100
}

func StatusOf(percentRemaining float64) AllowanceStatus {
	switch {
	case percentRemaining > 50:
		return AllowancePlenty
	case percentRemaining > 25:
		return AllowanceLow
	default:
		return AllowanceCritical
	}
}

func Account(remaining, limit int) (Allowance, error) {
	if err := validateAllowance(remaining, limit); err != nil {
		return Allowance{}, err
	}

	used := limit - remaining
	percent := PercentRemaining(remaining, limit)

	// both inputs are validated non-negative, so these cannot fail
	remainingBreakdown, _ := SplitMinutes(remaining)
	usedBreakdown, _ := SplitMinutes(used)

	return Allowance{
		Remaining:        remainingBreakdown,
		Used:             usedBreakdown,
		RemainingMinutes: remaining,
		UsedMinutes:      used,
		DailyLimit:       limit,
		PercentRemaining: percent,
		Status:           StatusOf(percent),
		Urgent:           remaining < urgentMinutes,
	}, nil
}

// Consume subtracts used minutes, flooring at zero.
func Consume(remaining, limit, minutes int) (int, error) {
	if err := validateAllowance(remaining, limit); err != nil {
		return 0, err
	}
	if minutes < 0 {
		return 0, invalidf("consumed minutes must not be negative, got %d", minutes)
	}
	return max(remaining-minutes, 0), nil
}

// EnsureAtLeast raises remaining to minutes, capped at the daily limit. Never
// lowers it, so applying it twice equals applying it once.
func EnsureAtLeast(remaining, limit, minutes int) (int, error) {
	if err := validateAllowance(remaining, limit); err != nil {
		return 0, err
	}
	if minutes < 0 {
		return 0, invalidf("granted minutes must not be negative, got %d", minutes)
	}
	return min(max(remaining, minutes), limit), nil
}

// Rebase moves remaining onto a new daily limit keeping the minutes already
// used today.
func Rebase(remaining, oldLimit, newLimit int) (int, error) {
	if err := validateAllowance(remaining, oldLimit); err != nil {
		return 0, err
	}
	if newLimit < 0 {
		return 0, invalidf("daily limit must not be negative, got %d", newLimit)
	}
	used := oldLimit - remaining
	return max(newLimit-used, 0), nil
}

// CapUsage adds minutes to an app's usage, capped at its limit when it has
// one. exhausted reports whether the limit is now reached.
func CapUsage(used int, limit *int, minutes int) (newUsed int, exhausted bool, err error) {
	if used < 0 || minutes < 0 {
		return 0, false, invalidf("usage minutes must not be negative")
	}
	newUsed = used + minutes
	if limit == nil {
		return newUsed, false, nil
	}
	if *limit < 0 {
		return 0, false, invalidf("time limit must not be negative, got %d", *limit)
	}
	newUsed = min(newUsed, *limit)
	return newUsed, newUsed >= *limit, nil
}
