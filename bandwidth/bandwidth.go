// Package bandwidth converts between the human-readable size literals found in
// AWStats reports and exact byte counts.
package bandwidth

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/strutil"
)

// Binary (1024-based) scale factors, matching AWStats display units.
const (
	KB int64 = 1 << 10
	MB int64 = 1 << 20
	GB int64 = 1 << 30
	TB int64 = 1 << 40
)

// literalRe matches "<decimal><optional whitespace><unit>" at the start of a
// normalized literal. Units are listed longest first so "B" cannot win against
// the trailing byte of "KB".
var literalRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*(TB|GB|MB|KB|B)`)

// Parse converts a size literal such as "12 KB" or "2.5MB" into a byte count,
// truncating toward zero. Unit letters are case-insensitive and surrounding
// whitespace is ignored. Unrecognized literals yield (0, false); report cells
// are frequently empty or decorative, and callers count those as zero bytes
// rather than failing the row.
func Parse(literal string) (int64, bool) {
	normalized := strutil.NormalizeUpper(literal)
	// AWStats pads some cells with non-breaking spaces, which the ASCII-only
	// \s class in the pattern would not cross.
	normalized = strings.ReplaceAll(normalized, "\u00a0", " ")
	match := literalRe.FindStringSubmatch(normalized)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	product := value * float64(scaleFor(match[2]))
	// Conversion of an out-of-range float to int64 is not defined; a count
	// past 2^63 bytes is corrupt report data, not bandwidth.
	if product >= math.MaxInt64 {
		return 0, false
	}
	return int64(product), true
}

func scaleFor(unit string) int64 {
	switch unit {
	case "TB":
		return TB
	case "GB":
		return GB
	case "MB":
		return MB
	case "KB":
		return KB
	}
	return 1
}

// Format renders a byte count in the largest unit it fills, with two decimal
// places for KB and above and a bare integer below 1 KB. Display-only;
// Parse(Format(n)) recovers n up to the two-decimal rounding.
func Format(bytes int64) string {
	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	}
	return fmt.Sprintf("%d B", bytes)
}
