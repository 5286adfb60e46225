package orders

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	defaultNumberPrefix = "ARC"
	numberSuffixLength  = 3
	numberAlphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NumberGenerator produces customer-facing order numbers such as ARC-MDQ3K1XQ2:
// the configured prefix, a base36 millisecond timestamp and a short random
// suffix. The timestamp keeps numbers roughly sortable, the suffix separates
// orders placed within the same millisecond.
type NumberGenerator struct {
	prefix string
	now    func() time.Time
}

// NewNumberGenerator builds a generator for the given prefix. An empty prefix
// falls back to the default.
func NewNumberGenerator(prefix string) *NumberGenerator {
	cleaned := strings.ToUpper(strings.TrimSpace(prefix))
	if cleaned == "" {
		cleaned = defaultNumberPrefix
	}
	return &NumberGenerator{
		prefix: cleaned,
		now:    time.Now,
	}
}

// Generate returns a fresh order number. Uniqueness is only probabilistic
// here; the database unique constraint is the real guarantee and callers
// retry on collision.
func (g *NumberGenerator) Generate() (string, error) {
	timestamp := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))

	buf := make([]byte, numberSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read order number entropy: %w", err)
	}
	suffix := make([]byte, numberSuffixLength)
	for i, b := range buf {
		suffix[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}

	return fmt.Sprintf("%s-%s%s", g.prefix, timestamp, suffix), nil
}
