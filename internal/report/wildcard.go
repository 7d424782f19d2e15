package report

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// wildcardSpec binds a wildcard name to its discovery query: the endpoint to
// list, and the field extracted from each discovered item.
type wildcardSpec struct {
	discovery string
	field     string
	// escape marks values that may contain characters unsafe inside a
	// path segment (replication service names, notably).
	escape bool
}

// wildcards is the closed set of recognized slots. Adding one means adding a
// discovery query here; outlines cannot define their own.
var wildcards = map[string]wildcardSpec{
	"pool":    {discovery: "storage/pools", field: "poolName"},
	"service": {discovery: "services/replication", field: "name", escape: true},
}

// KnownWildcard reports whether name is a recognized wildcard slot.
func KnownWildcard(name string) bool {
	_, ok := wildcards[name]
	return ok
}

// expandWildcard resolves a slot against one target by running its discovery
// query. Discovery lists everything, so the request carries the same limit
// override as any other list request; otherwise a server-side page cap could
// silently drop instances from the report. The returned values are ready for
// path substitution (escaped where needed); an empty slice means the
// discovery found nothing, which the caller treats as "skip this step", not
// as an error.
func expandWildcard(ctx context.Context, q Querier, slot string, limit int) ([]string, error) {
	spec, ok := wildcards[slot]
	if !ok {
		return nil, fmt.Errorf("unknown wildcard %q", slot)
	}

	resp, err := q.Get(ctx, spec.discovery, map[string]string{"limit": strconv.Itoa(limit)})
	if err != nil {
		return nil, fmt.Errorf("expanding wildcard {%s}: %w", slot, err)
	}

	var values []string
	for _, rec := range asRecords(resp) {
		v, ok := rec[spec.field]
		if !ok {
			continue
		}
		s := fmt.Sprintf("%v", v)
		if spec.escape {
			s = url.PathEscape(s)
		}
		values = append(values, s)
	}
	return values, nil
}

// displayValue undoes path escaping for the per-instance label shown in the
// document.
func displayValue(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}
