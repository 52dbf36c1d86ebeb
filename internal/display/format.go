package display

import (
	"fmt"
)

var sizeSuffixes = []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// FormatBytes renders n as a binary-prefixed size for the run summary,
// e.g. "812 B", "1.5 KiB", "4.2 MiB". One decimal place is plenty for
// reporting how much a batch of videos shrank.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n)
	idx := -1
	for value >= unit && idx < len(sizeSuffixes)-1 {
		value /= unit
		idx++
	}
	return fmt.Sprintf("%.1f %s", value, sizeSuffixes[idx])
}

// FormatBytesWithSign prefixes the size with its sign, for reporting
// deltas that can go either way (outputs larger than inputs).
func FormatBytesWithSign(n int64) string {
	switch {
	case n > 0:
		return "+ " + FormatBytes(n)
	case n < 0:
		return "- " + FormatBytes(-n)
	}
	return FormatBytes(0)
}
