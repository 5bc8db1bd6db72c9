package checks

import (
	"strconv"
)

// NonLethalDamage is a failed lethality roll read as two d10s
type NonLethalDamage struct {
	Die1  int `json:"die1"`
	Die2  int `json:"die2"`
	Total int `json:"total"`
}

// NonLethalMethod selects how a d100 total is split into two d10s
type NonLethalMethod string

// Split methods. Digits is the current rule; Legacy reproduces the
// tens/units reading used by older sheets, which differs on multiples
// of ten (70 is 7+10 under Digits and 6+10 under Legacy).
const (
	NonLethalDigits NonLethalMethod = "digits"
	NonLethalLegacy NonLethalMethod = "legacy"
)

// Split converts total with the selected method. Unknown methods use Digits.
func (m NonLethalMethod) Split(total int) NonLethalDamage {
	if m == NonLethalLegacy {
		return SplitNonLethalLegacy(total)
	}
	return SplitNonLethal(total)
}

// SplitNonLethal reads each decimal digit of total as a d10 face, 0
// counting as 10. A single digit pairs with a 10 and 100 is two 10s.
// Totals outside 1..100 are clamped first.
func SplitNonLethal(total int) NonLethalDamage {
	total = clampPercentile(total)

	s := strconv.Itoa(total)
	var die1, die2 int
	switch len(s) {
	case 1:
		die1, die2 = 10, total
	case 2:
		die1, die2 = digitFace(s[0]), digitFace(s[1])
	default:
		die1, die2 = 10, 10
	}
	return NonLethalDamage{Die1: die1, Die2: die2, Total: die1 + die2}
}

// SplitNonLethalLegacy reads total as tens and units dice where a units
// face of 10 borrows from the tens die.
func SplitNonLethalLegacy(total int) NonLethalDamage {
	total = clampPercentile(total)

	die1, die2 := total/10, total%10
	if die2 == 0 {
		die2 = 10
		die1--
	}
	if die1 == 0 {
		die1 = 10
	}
	return NonLethalDamage{Die1: die1, Die2: die2, Total: die1 + die2}
}

func digitFace(b byte) int {
	if b == '0' {
		return 10
	}
	return int(b - '0')
}

func clampPercentile(total int) int {
	if total < 1 {
		return 1
	}
	if total > 100 {
		return 100
	}
	return total
}
