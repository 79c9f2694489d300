package domain

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// idSuffixLength is the number of base-36 characters appended to every trip ID.
const idSuffixLength = 9

// variantMask clears the two RFC 4122 variant bits at the top of a UUID's
// second half, leaving 62 random bits.
const variantMask = 1<<62 - 1

// GenerateTripID returns an ID of the form "trip-<unix millis>-<9 base-36 chars>".
// Uniqueness is probabilistic: the suffix is the low-order base-36 digits of
// the random half of a v4 UUID.
func GenerateTripID(now time.Time) string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[8:]) & variantMask
	suffix := strconv.FormatUint(n, 36)
	if len(suffix) < idSuffixLength {
		suffix = strings.Repeat("0", idSuffixLength-len(suffix)) + suffix
	}
	return fmt.Sprintf("trip-%d-%s", now.UnixMilli(), suffix[len(suffix)-idSuffixLength:])
}
