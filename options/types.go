package options

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionType is the closed set of vanilla contract types.
type OptionType uint8

const (
	Call OptionType = iota
	Put
)

// ParseOptionType parses a contract type label case-insensitively.
// Anything other than "call" or "put" is rejected.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, fmt.Errorf("unknown option type %q", s)
}

// String returns the fixed-case label used in output records.
func (t OptionType) String() string {
	switch t {
	case Call:
		return "Call"
	case Put:
		return "Put"
	}
	return fmt.Sprintf("OptionType(%d)", uint8(t))
}

// MarshalCSV lets gocsv serialize the type with its record label.
func (t OptionType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// UnmarshalCSV lets gocsv read a type column back in.
func (t *OptionType) UnmarshalCSV(s string) error {
	parsed, err := ParseOptionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON keeps JSON dumps on the same label as the CSV column.
func (t OptionType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}
