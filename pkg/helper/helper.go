package helper

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// FormatLapTime renders a duration in seconds for display.
// Durations of an hour or more (aggregate race times) come out as
// H:MM:SS.mmm, a minute or more as M:SS.mmm, anything shorter as SS.mmm.
// A missing duration renders as "-".
func FormatLapTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	totalMillis := int(math.Round(seconds * 1000))
	milliseconds := totalMillis % 1000
	total := totalMillis / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, secs, milliseconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%d:%02d.%03d", minutes, secs, milliseconds)
	}
	return fmt.Sprintf("%d.%03d", secs, milliseconds)
}

// FormatGap renders a non-negative gap to the reference lap ("+1.333s").
// The reference row itself is labeled by the caller, not here.
func FormatGap(seconds float64) string {
	return fmt.Sprintf("+%.3fs", seconds)
}

// FormatSignedGap renders a teammate gap, which can be negative for the
// faster car of a pairing.
func FormatSignedGap(seconds float64) string {
	return fmt.Sprintf("%+.3fs", seconds)
}

// FormatPoints drops the decimals of whole-number points totals.
func FormatPoints(points float64) string {
	if points == math.Trunc(points) {
		return fmt.Sprintf("%.0f", points)
	}
	return fmt.Sprintf("%g", points)
}

// ToSectorTime renders a sector duration, "-" when missing.
func ToSectorTime(t float64) string {
	if t <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f", t)
}

// GetDriverCodeName builds a short code from a driver name: first letter
// of the first name plus the first two letters of the surname.
func GetDriverCodeName(name string) string {
	if name == "" {
		return ""
	}
	words := strings.Split(name, " ")
	code := string(words[0][0])
	if len(words) > 1 {
		if len(words[1]) > 2 {
			code += words[1][:2]
		} else {
			code += words[1]
		}
	} else {
		if len(words[0]) > 2 {
			code += words[0][1:3]
		} else {
			code += words[0]
		}
	}
	return strings.ToUpper(code)
}

// ToID converts a name to a stable short identifier.
func ToID(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprint(h.Sum32())
}
