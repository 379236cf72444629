// Package nodes resolves the node groups a dashboard is generated for.
//
// A node group is a name (used as the template placeholder, e.g. {{node}})
// bound to an ordered list of values such as hostnames. Values come either
// from the config file, where range tokens like web-001--010 are expanded,
// or from a single whitespace-separated line on standard input.
package nodes

import (
	"fmt"
	"regexp"
	"strconv"
)

// RangeSeparator separates the start and end of a range token.
const RangeSeparator = "--"

// rangeRE matches <prefix ending in '-'><start>--<end><suffix>. The greedy
// prefix means only one range per token is recognized.
var rangeRE = regexp.MustCompile(`^(.*-)(\d+)` + regexp.QuoteMeta(RangeSeparator) + `(\d+)(.*)$`)

// Expand turns a range token into the explicit list of values it denotes.
//
//	Expand("web-001--003")      // [web-001 web-002 web-003]
//	Expand("host-01--03/HTTP")  // [host-01/HTTP host-02/HTTP host-03/HTTP]
//	Expand("db-main")           // [db-main]
//
// Numbers are zero padded to the width of the start digits. A range whose
// start is after its end expands to an empty list. Tokens that are not
// ranges, or whose numbers don't fit in an int, are returned unchanged.
// Expand does not bound the size of a range; Resolve rejects tokens whose
// RangeSize exceeds MaxRangeSize.
func Expand(token string) []string {
	r, ok := parseRange(token)
	if !ok {
		return []string{token}
	}
	out := make([]string, 0, r.size())
	for i := r.start; i <= r.end; i++ {
		out = append(out, fmt.Sprintf("%s%0*d%s", r.prefix, r.width, i, r.suffix))
	}
	return out
}

// MaxRangeSize bounds how many values a single range token may expand to.
const MaxRangeSize = 100_000

// RangeSize is the number of values Expand(token) returns, computed without
// expanding.
func RangeSize(token string) int {
	r, ok := parseRange(token)
	if !ok {
		return 1
	}
	return r.size()
}

type numRange struct {
	prefix, suffix string
	start, end     int
	width          int
}

// size saturates at MaxRangeSize+1 so huge ranges can't overflow.
func (r numRange) size() int {
	if r.start > r.end {
		return 0
	}
	if r.end-r.start >= MaxRangeSize {
		return MaxRangeSize + 1
	}
	return r.end - r.start + 1
}

func parseRange(token string) (numRange, bool) {
	m := rangeRE.FindStringSubmatch(token)
	if m == nil {
		return numRange{}, false
	}
	start, err := strconv.Atoi(m[2])
	if err != nil {
		return numRange{}, false
	}
	end, err := strconv.Atoi(m[3])
	if err != nil {
		return numRange{}, false
	}
	return numRange{prefix: m[1], suffix: m[4], start: start, end: end, width: len(m[2])}, true
}

// IsRange reports whether token uses range syntax.
func IsRange(token string) bool {
	return rangeRE.MatchString(token)
}
