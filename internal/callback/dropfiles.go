package callback

import "strings"

// ParseDropPayload splits a newline-separated drop payload into paths. Each
// candidate is trimmed and empty ones are dropped; order is kept.
func ParseDropPayload(payload string) []string {
	var paths []string
	for _, line := range strings.Split(payload, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
