package sequence

import (
	"fmt"
	"regexp"
	"strconv"
)

// Order ids are "OD" plus a zero-padded number, e.g. OD000042. The
// numeric suffix is globally unique and monotonically increasing.
const orderIDDigits = 6

var orderIDPattern = regexp.MustCompile(`^OD(\d+)$`)

func FormatOrderID(n int64) string {
	return fmt.Sprintf("OD%0*d", orderIDDigits, n)
}

// ParseOrderID extracts the numeric suffix. Malformed ids report ok=false.
func ParseOrderID(id string) (int64, bool) {
	m := orderIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxAssigned returns the highest numeric suffix among the given ids,
// ignoring anything that does not match the OD pattern.
func MaxAssigned(ids []string) int64 {
	var max int64
	for _, id := range ids {
		if n, ok := ParseOrderID(id); ok && n > max {
			max = n
		}
	}
	return max
}

// NextFromIDs is the scan-then-add-one allocation over existing ids.
// It is racy under concurrent checkouts and only used to seed the
// transactional counter; new ids come from Repository.NextOrderID.
func NextFromIDs(ids []string) string {
	return FormatOrderID(MaxAssigned(ids) + 1)
}
