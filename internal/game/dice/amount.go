package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a parsed amount expression: a flat value ("2") or a dice roll with
// an optional modifier ("d4", "2d3+1").
//
// Invariant: Count == 0 means the amount is exactly Modifier.
type Amount struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// ParseAmount parses an amount expression.
//
// Precondition: expr must be non-empty.
// Postcondition: Returns an Amount with Count >= 0 and Sides >= 2 when Count > 0,
// or a descriptive error.
func ParseAmount(expr string) (Amount, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Amount{}, fmt.Errorf("dice: empty amount")
	}

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Amount{}, fmt.Errorf("dice: invalid flat amount %q: %w", expr, err)
		}
		return Amount{Raw: expr, Modifier: v}, nil
	}

	count := 1
	if dIdx > 0 {
		var err error
		count, err = strconv.Atoi(s[:dIdx])
		if err != nil || count <= 0 {
			return Amount{}, fmt.Errorf("dice: invalid die count in %q", expr)
		}
	}

	rest := s[dIdx+1:]
	modStr := ""
	if i := strings.IndexAny(rest, "+-"); i > 0 {
		rest, modStr = rest[:i], rest[i:]
	}

	sides, err := strconv.Atoi(rest)
	if err != nil || sides < 2 {
		return Amount{}, fmt.Errorf("dice: invalid die sides in %q", expr)
	}

	mod := 0
	if modStr != "" {
		mod, err = strconv.Atoi(modStr)
		if err != nil {
			return Amount{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}
	return Amount{Raw: expr, Count: count, Sides: sides, Modifier: mod}, nil
}

// MustParseAmount parses expr and panics on error.
func MustParseAmount(expr string) Amount {
	a, err := ParseAmount(expr)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// Min returns the smallest value the amount can produce.
func (a Amount) Min() int { return a.Count + a.Modifier }

// Max returns the largest value the amount can produce.
func (a Amount) Max() int { return a.Count*a.Sides + a.Modifier }

// Roll evaluates the amount against src.
//
// Postcondition: Min() <= result <= Max().
func (a Amount) Roll(src Source) int {
	total := a.Modifier
	for range a.Count {
		total += src.Intn(a.Sides) + 1
	}
	return total
}

// String returns the original expression.
func (a Amount) String() string { return a.Raw }
