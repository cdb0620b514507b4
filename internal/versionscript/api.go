package versionscript

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// FutureAPILevel is the level assigned to "current", "future", and an
// unspecified API, so that every released symbol is included.
const FutureAPILevel uint32 = 10000

var apiCodenames = map[string]uint32{
	"G":               9,
	"I":               14,
	"J":               16,
	"J-MR1":           17,
	"J-MR2":           18,
	"K":               19,
	"L":               21,
	"L-MR1":           22,
	"M":               23,
	"N":               24,
	"N-MR1":           25,
	"O":               26,
	"O-MR1":           27,
	"P":               28,
	"Q":               29,
	"R":               30,
	"S":               31,
	"Sv2":             32,
	"Tiramisu":        33,
	"UpsideDownCake":  34,
	"VanillaIceCream": 35,
}

// ParseAPILevel converts an API level, codename, or "current"/"future".
func ParseAPILevel(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "current", "future":
		return FutureAPILevel, nil
	}
	if level, ok := apiCodenames[s]; ok {
		return level, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid API level %q", s)
	}
	level, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("invalid API level %q: %w", s, err)
	}
	return level, nil
}
