package helpers

import (
	"math"
	"strconv"
)

var trafficUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatTraffic renders a byte count in the largest unit keeping the
// magnitude in [1, 1024), rounded to two decimal places. Zero or negative
// counts render as "0 B".
func FormatTraffic(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(trafficUnits)-1 {
		value /= 1024
		unit++
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + trafficUnits[unit]
}
