package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID allocates the next sequential entity ID for a prefix.
// IDs are the prefix followed by a zero-padded counter, three digits
// minimum. The counter only moves forward: it is derived from the last
// allocated ID, so deleted IDs are never reused. An empty lastID starts
// the sequence at 1.
func NextID(prefix, lastID string) (string, error) {
	if lastID == "" {
		return fmt.Sprintf("%s%03d", prefix, 1), nil
	}
	suffix := strings.TrimPrefix(lastID, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("malformed id %q for prefix %s: %w", lastID, prefix, err)
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}
