package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"storedoc/internal/doc"
)

// Querier is the one capability the report core needs from the transport.
// The rest client satisfies it; tests substitute a fake.
type Querier interface {
	Get(ctx context.Context, path string, params map[string]string) (any, error)
}

// Target is one appliance contributing data to the report.
type Target struct {
	Hostname string
	Query    Querier
}

// Executor turns one API-bearing section into requests and formatted output
// for a single target.
type Executor struct {
	log *slog.Logger
	// fetchLimit overrides the server-side page limit on list requests so
	// large collections are not silently truncated.
	fetchLimit int
}

// NewExecutor builds an executor. limit must be a high ceiling; zero falls
// back to 8192.
func NewExecutor(log *slog.Logger, limit int) *Executor {
	if limit <= 0 {
		limit = 8192
	}
	return &Executor{log: log, fetchLimit: limit}
}

// Execute evaluates a node's API step against one target. A wildcard in the
// path is resolved once, then the request/format step runs per instance, each
// preceded by a label naming the instance. A wildcard resolving to nothing
// skips the step entirely; any transport failure is returned and aborts the
// run upstream.
func (e *Executor) Execute(ctx context.Context, t Target, node *Node, sink doc.Sink) error {
	tmpl := node.Method

	params := map[string]string{}
	if node.Fields != nil && !node.Postfilter {
		params["fields"] = strings.Join(node.Fields, ",")
	}
	if node.Formatter.listShaped() {
		params["limit"] = strconv.Itoa(e.fetchLimit)
	}

	if !tmpl.HasWildcard() {
		return e.fetchAndFormat(ctx, t, node, tmpl.String(), params, sink)
	}

	values, err := expandWildcard(ctx, t.Query, tmpl.Slot(), e.fetchLimit)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		e.log.Debug("wildcard resolved to nothing, skipping",
			"host", t.Hostname, "path", tmpl.String(), "slot", tmpl.Slot())
		return nil
	}
	for _, value := range values {
		label := fmt.Sprintf("%s: %s", tmpl.Slot(), displayValue(value))
		if err := sink.Emit(doc.Paragraph(label)); err != nil {
			return err
		}
		if err := e.fetchAndFormat(ctx, t, node, tmpl.Instantiate(value), params, sink); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) fetchAndFormat(ctx context.Context, t Target, node *Node, path string, params map[string]string, sink doc.Sink) error {
	resp, err := t.Query.Get(ctx, path, params)
	if err != nil {
		return fmt.Errorf("querying %s on %s: %w", path, t.Hostname, err)
	}
	if resp == nil {
		// The API answers several endpoints with an empty body when
		// there is nothing to report. Treated as an empty result, except
		// for the rsf formatter: its contract is a literal "None" for an
		// unconfigured cluster, so the label is never left dangling.
		e.log.Debug("empty response body", "host", t.Hostname, "path", path)
		if node.Formatter != FormatterRSF {
			return nil
		}
	}
	if err := node.Formatter.Format(resp, node.Fields, sink); err != nil {
		return fmt.Errorf("formatting %s from %s: %w", path, t.Hostname, err)
	}
	return nil
}
