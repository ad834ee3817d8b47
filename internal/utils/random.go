package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// generateRandomSuffixWithLength generates a random suffix of the given length
// using lowercase letters and numbers. Lengths less than or equal to zero fall
// back to 4.
func generateRandomSuffixWithLength(length int) string {
	if length <= 0 {
		length = 4
	}
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffix := make([]byte, length)
	for i := range suffix {
		suffix[i] = charset[rand.Intn(len(charset))]
	}
	return string(suffix)
}

// GenerateItemID produces a short timestamp-plus-random identifier for
// list entries (features, price items). The taken set holds IDs already in
// use; on the unlikely collision the suffix is regenerated. After a bounded
// number of retries the suffix length grows, which makes a further collision
// practically impossible.
func GenerateItemID(prefix string, taken map[string]struct{}) string {
	base := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffixLen := 4
	for attempt := 0; ; attempt++ {
		id := fmt.Sprintf("%s-%s%s", prefix, base, generateRandomSuffixWithLength(suffixLen))
		if _, exists := taken[id]; !exists {
			return id
		}
		if attempt >= 4 {
			suffixLen++
		}
	}
}
