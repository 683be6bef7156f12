package taxyear

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Year is an Australian tax-year label like "2025-26" (1 July 2025 – 30 June 2026).
type Year string

// Format returns the label for the tax year starting 1 July of startYear.
// Format(2025) -> "2025-26"
func Format(startYear int) Year {
	return Year(fmt.Sprintf("%04d-%02d", startYear, (startYear+1)%100))
}

// Parse validates a label and returns its starting calendar year.
func Parse(label string) (int, error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid tax year %q: want YYYY-YY", label)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return 0, fmt.Errorf("invalid start year in tax year %q", label)
	}

	end, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid end year in tax year %q", label)
	}

	if end != (start+1)%100 {
		return 0, fmt.Errorf("tax year %q does not span consecutive years", label)
	}
	return start, nil
}

// Valid reports whether label is a well-formed tax-year label.
func Valid(label string) bool {
	_, err := Parse(label)
	return err == nil
}

// Next returns the label of the following tax year.
func (y Year) Next() (Year, error) {
	start, err := Parse(string(y))
	if err != nil {
		return "", err
	}
	return Format(start + 1), nil
}

// ForDate returns the tax year containing t. Australian tax years run
// 1 July – 30 June.
func ForDate(t time.Time) Year {
	if t.Month() >= time.July {
		return Format(t.Year())
	}
	return Format(t.Year() - 1)
}

// Key derives a persistence key like "lvp-2025-26" for a namespace and year.
func Key(namespace string, y Year) string {
	return namespace + "-" + string(y)
}
