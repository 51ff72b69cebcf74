package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentRegex matches `name` or `name[1]`. Names may hold anything except
// the path separators.
var segmentRegex = regexp.MustCompile(`^([^.\[\]\s]+)(?:\[(\d+)\])?$`)

// isValidSegmentName rejects names that only make sense as path syntax.
func isValidSegmentName(name string) bool {
	return name != "-" && name != "*"
}

// Parse builds an Address from its canonical dotted form.
func Parse(raw string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	addr := &Address{}
	for _, segmentStr := range strings.Split(raw, ".") {
		if segmentStr == "" {
			return nil, fmt.Errorf("address %q contains an empty segment", raw)
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return nil, fmt.Errorf("invalid address segment %q", segmentStr)
		}

		name := matches[1]
		if !isValidSegmentName(name) {
			return nil, fmt.Errorf("invalid segment name %q", name)
		}

		segment := NewPathSegment(name)
		if matches[2] != "" {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				return nil, fmt.Errorf("segment %q: index out of range: %w", segmentStr, err)
			}
			segment.Index = index
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}
