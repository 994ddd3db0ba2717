package feed

import "strings"

// ParseSeverity derives the summary's severity from its insights: the first
// entry with the case-insensitive prefix "severity:" wins, and its value is
// the segment between the first and second colon, trimmed and lower-cased.
// No matching entry means "low". The string convention is upstream's; keep
// the coupling confined to this function.
func ParseSeverity(insights []string) string {
	for _, insight := range insights {
		if !strings.HasPrefix(strings.ToLower(insight), "severity:") {
			continue
		}
		parts := strings.Split(insight, ":")
		return strings.ToLower(strings.TrimSpace(parts[1]))
	}
	return "low"
}
