// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roman decodes Roman numerals found in register headings.
package roman

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNumeral is returned when a numeral contains a character outside
// the seven-letter alphabet or is empty.
var ErrInvalidNumeral = errors.New("invalid roman numeral")

var values = map[rune]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// Decode returns the integer value of numeral. Letters are case-insensitive.
// The numeral is scanned right to left: a letter is added unless its value
// is smaller than the largest value seen to its right, in which case it is
// subtracted. Well-formedness is not checked, so "IIII" decodes to 4.
func Decode(numeral string) (int, error) {
	if numeral == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumeral)
	}

	runes := []rune(strings.ToUpper(numeral))
	total, maxRight := 0, 0
	for i := len(runes) - 1; i >= 0; i-- {
		v, ok := values[runes[i]]
		if !ok {
			return 0, fmt.Errorf("%w: %q in %q", ErrInvalidNumeral, runes[i], numeral)
		}
		if v < maxRight {
			total -= v
			continue
		}
		total += v
		maxRight = v
	}
	return total, nil
}
