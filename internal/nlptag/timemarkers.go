package nlptag

import (
	"regexp"
	"strconv"
	"strings"
)

var timeMarkerPattern = regexp.MustCompile(`(?i)\b(the next morning|next day|next morning|yesterday|today|tonight|tomorrow|last night|that night|that morning|that evening|that afternoon|hours later|days later|weeks later|years later|\d{4})\b`)

// TimeMarkers extracts explicit or relative time expressions from text.
func TimeMarkers(text string) []string {
	return timeMarkerPattern.FindAllString(text, -1)
}

// MarkerOrder maps a time marker onto a relative ordering value. Calendar
// years order among themselves; relative markers order around zero ("today").
// The second return is false for unrecognized markers.
func MarkerOrder(marker string) (float64, bool) {
	m := strings.ToLower(strings.TrimSpace(marker))
	if year, err := strconv.Atoi(m); err == nil && year >= 1000 && year <= 9999 {
		return float64(year), true
	}
	switch m {
	case "yesterday":
		return -1, true
	case "last night":
		return -0.5, true
	case "that morning", "that afternoon", "that evening", "that night", "today", "tonight":
		return 0, true
	case "tomorrow", "next day", "next morning", "the next morning":
		return 1, true
	case "hours later":
		return 0.25, true
	case "days later":
		return 2, true
	case "weeks later":
		return 10, true
	case "years later":
		return 100, true
	}
	return 0, false
}
