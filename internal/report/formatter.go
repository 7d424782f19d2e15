package report

import (
	"fmt"
	"sort"
	"strings"

	"storedoc/internal/doc"
)

// FormatterKind is the closed set of rendering strategies a section can name.
// Outline formatter names are parsed into a kind at compile time, so an
// unknown name never survives to render time.
type FormatterKind int

const (
	// FormatterCollection renders a list of uniform records as a table.
	FormatterCollection FormatterKind = iota
	// FormatterCollectionProperty renders each record as a Name/Value table.
	FormatterCollectionProperty
	// FormatterProperties renders a single flat record as a Name/Value table.
	FormatterProperties
	// FormatterFCTarget renders Fibre Channel targets, deriving the node
	// WWN column for remote entries.
	FormatterFCTarget
	// FormatterRSF renders the cluster service configuration.
	FormatterRSF
	// FormatterZpool renders a pool's device topology one level deep.
	FormatterZpool
)

var formatterNames = map[string]FormatterKind{
	"collection":          FormatterCollection,
	"collection-property": FormatterCollectionProperty,
	"properties":          FormatterProperties,
	"fc-target":           FormatterFCTarget,
	"rsf":                 FormatterRSF,
	"zpool":               FormatterZpool,
}

// ParseFormatterKind maps an outline formatter name to its kind.
func ParseFormatterKind(name string) (FormatterKind, error) {
	kind, ok := formatterNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown formatter %q", name)
	}
	return kind, nil
}

func (k FormatterKind) String() string {
	for name, kind := range formatterNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("formatter(%d)", int(k))
}

// listShaped reports whether the kind consumes a record collection, which is
// what decides the fetch-limit override on the request.
func (k FormatterKind) listShaped() bool {
	switch k {
	case FormatterCollection, FormatterCollectionProperty, FormatterFCTarget:
		return true
	}
	return false
}

// Format renders one API response. Formatters are pure: identical input
// yields an identical event sequence.
func (k FormatterKind) Format(resp any, fields []string, sink doc.Sink) error {
	switch k {
	case FormatterCollection:
		return formatCollection(resp, fields, sink)
	case FormatterCollectionProperty:
		return formatCollectionProperty(resp, fields, sink)
	case FormatterProperties:
		return formatProperties(resp, fields, sink)
	case FormatterFCTarget:
		return formatFCTarget(resp, fields, sink)
	case FormatterRSF:
		return formatRSF(resp, sink)
	case FormatterZpool:
		return formatZpool(resp, sink)
	}
	return fmt.Errorf("no renderer registered for %s", k)
}

// noiseKeys are response bookkeeping fields never worth a column.
var noiseKeys = map[string]struct{}{
	"href":   {},
	"links":  {},
	"flags":  {},
	"schema": {},
}

// formatCollection renders uniform records as one table. An empty collection
// emits nothing.
func formatCollection(resp any, fields []string, sink doc.Sink) error {
	records := asRecords(resp)
	if len(records) == 0 {
		return nil
	}

	cols := columnSet(records[0], fields)
	rows := [][]string{capitalizeAll(cols)}
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = stringify(rec[col])
		}
		rows = append(rows, row)
	}
	return sink.Emit(doc.Table(rows))
}

// formatCollectionProperty renders each record vertically under a fixed
// Name/Value header; a field absent from a record shows as a dash.
func formatCollectionProperty(resp any, fields []string, sink doc.Sink) error {
	records := asRecords(resp)
	for _, rec := range records {
		cols := columnSet(rec, fields)
		rows := [][]string{{"Name", "Value"}}
		for _, col := range cols {
			value := "-"
			if v, ok := rec[col]; ok {
				value = stringify(v)
			}
			rows = append(rows, []string{col, value})
		}
		if err := sink.Emit(doc.Table(rows)); err != nil {
			return err
		}
	}
	return nil
}

// formatProperties renders a single flat record as a Name/Value table. When
// fields are requested, every one of them must be present in the response.
func formatProperties(resp any, fields []string, sink doc.Sink) error {
	rec, ok := resp.(map[string]any)
	if !ok {
		return fmt.Errorf("properties formatter expects a single record, got %T", resp)
	}

	var cols []string
	if fields != nil {
		for _, f := range fields {
			if _, present := rec[f]; !present {
				return fmt.Errorf("field %q not present in response", f)
			}
		}
		cols = fields
	} else {
		cols = sortedKeys(rec)
	}

	rows := [][]string{{"Name", "Value"}}
	for _, col := range cols {
		rows = append(rows, []string{col, stringify(rec[col])})
	}
	return sink.Emit(doc.Table(rows))
}

// formatFCTarget renders Fibre Channel target records. Remote targets carry
// only location and name verbatim; their node WWN is derived from the name
// (everything after the first dot) and every other column is blanked so rows
// keep the same column count as local ones.
func formatFCTarget(resp any, fields []string, sink doc.Sink) error {
	records := asRecords(resp)
	if len(records) == 0 {
		return nil
	}

	cols := columnSet(records[0], fields)
	rows := [][]string{capitalizeAll(cols)}
	for _, rec := range records {
		remote := strings.EqualFold(stringify(rec["location"]), "remote")
		row := make([]string, len(cols))
		for i, col := range cols {
			switch {
			case !remote, col == "location", col == "name":
				row[i] = stringify(rec[col])
			case col == "nodeWwn":
				name := stringify(rec["name"])
				if _, rest, found := strings.Cut(name, "."); found {
					row[i] = rest
				}
			default:
				row[i] = ""
			}
		}
		rows = append(rows, row)
	}
	return sink.Emit(doc.Table(rows))
}

// monitorFlags are the cluster monitoring toggles shown by the rsf formatter,
// in display order.
var monitorFlags = []string{
	"fcMonitoringEnabled",
	"netMonitoringEnabled",
	"serialHeartbeatEnabled",
}

// formatRSF renders the cluster service configuration. An appliance without a
// configured cluster answers with nothing, which renders as a literal "None".
func formatRSF(resp any, sink doc.Sink) error {
	// The cluster endpoint wraps its single configuration in the usual
	// collection envelope.
	if records := asRecords(resp); len(records) > 0 {
		resp = records[0]
	}
	rec, ok := resp.(map[string]any)
	if !ok || len(rec) == 0 {
		return sink.Emit(doc.Paragraph("None"))
	}
	if _, enveloped := rec["data"]; enveloped && len(rec) == 1 {
		return sink.Emit(doc.Paragraph("None"))
	}

	if err := sink.Emit(doc.Paragraph(fmt.Sprintf("Cluster: %s", stringify(rec["name"])))); err != nil {
		return err
	}
	if desc := stringify(rec["description"]); desc != "" {
		if err := sink.Emit(doc.Paragraph(desc)); err != nil {
			return err
		}
	}

	flagRows := [][]string{{"Monitor", "Enabled"}}
	for _, flag := range monitorFlags {
		if v, present := rec[flag]; present {
			flagRows = append(flagRows, []string{flag, stringify(v)})
		}
	}
	if len(flagRows) > 1 {
		if err := sink.Emit(doc.Table(flagRows)); err != nil {
			return err
		}
	}

	nodeRows := [][]string{{"Name", "Status", "Address", "Release"}}
	for _, node := range asRecords(rec["nodes"]) {
		nodeRows = append(nodeRows, []string{
			stringify(node["machineName"]),
			stringify(node["status"]),
			stringify(node["ipAddress"]),
			stringify(node["release"]),
		})
	}
	if len(nodeRows) > 1 {
		if err := sink.Emit(doc.Table(nodeRows)); err != nil {
			return err
		}
	}

	services := asRecords(rec["services"])
	if len(services) == 0 {
		return sink.Emit(doc.Paragraph("None"))
	}
	for _, svc := range services {
		name := stringify(svc["serviceName"])
		if name == "" {
			name = stringify(svc["name"])
		}
		if err := sink.Emit(doc.Paragraph(fmt.Sprintf("Service: %s", name))); err != nil {
			return err
		}
		svcRows := [][]string{{"Node", "Status"}}
		for _, node := range asRecords(svc["serviceNodes"]) {
			svcRows = append(svcRows, []string{
				stringify(node["machineName"]),
				stringify(node["status"]),
			})
		}
		if err := sink.Emit(doc.Table(svcRows)); err != nil {
			return err
		}
	}
	return nil
}

// formatZpool renders a pool and its device tree one level deep. Mirrored
// vdevs list their member disks indented beneath them; a vdev without a
// children attribute is a bare disk in a simple-stripe layout and is rendered
// at the top level with the same name/state/model fields.
func formatZpool(resp any, sink doc.Sink) error {
	rec, ok := resp.(map[string]any)
	if !ok {
		return fmt.Errorf("zpool formatter expects a single record, got %T", resp)
	}

	name := stringify(rec["poolName"])
	if name == "" {
		name = stringify(rec["name"])
	}
	lines := []string{fmt.Sprintf("%s  %s  %s", name, stringify(rec["health"]), formatCapacity(rec["size"]))}

	for _, vdev := range asRecords(rec["vdevs"]) {
		children, hasChildren := vdev["children"]
		if !hasChildren {
			lines = append(lines, "  "+diskLine(vdev))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", stringify(vdev["name"]), vdevState(vdev)))
		for _, disk := range asRecords(children) {
			lines = append(lines, "    "+diskLine(disk))
		}
	}
	return sink.Emit(doc.Preformatted(lines))
}

func diskLine(disk map[string]any) string {
	return fmt.Sprintf("%s  %s  %s", stringify(disk["name"]), vdevState(disk), stringify(disk["model"]))
}

func vdevState(rec map[string]any) string {
	if state := stringify(rec["diskState"]); state != "" {
		return state
	}
	return stringify(rec["health"])
}

// formatCapacity converts a raw byte count to terabytes with two decimals.
func formatCapacity(v any) string {
	bytes, ok := v.(float64)
	if !ok {
		return stringify(v)
	}
	return fmt.Sprintf("%.2f TB", bytes/(1024*1024*1024*1024))
}

// asRecords normalizes a response to a record list. Collection endpoints wrap
// their items in a "data" envelope; direct arrays are accepted too.
func asRecords(resp any) []map[string]any {
	if wrapped, ok := resp.(map[string]any); ok {
		if inner, present := wrapped["data"]; present {
			resp = inner
		}
	}
	items, ok := resp.([]any)
	if !ok {
		return nil
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

// columnSet picks the display columns: the requested fields when given, else
// the first record's keys (minus noise) in sorted order. JSON objects do not
// preserve key order, so sorting keeps reruns byte-identical.
func columnSet(first map[string]any, fields []string) []string {
	if fields != nil {
		return fields
	}
	return sortedKeys(first)
}

func sortedKeys(rec map[string]any) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if _, noise := noiseKeys[k]; noise {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func capitalizeAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = capitalize(c)
	}
	return out
}

// capitalize upper-cases the first letter and lower-cases the rest, turning
// camel-cased field names like poolName into the header Poolname.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
