// Package report is the section-tree interpreter at the heart of storedoc.
//
// An outline is compiled once into a validated Node tree, then rendered in a
// single depth-first pass. API-bearing nodes are evaluated once per target
// appliance: the executor resolves path wildcards, issues the REST query and
// hands the response to the node's formatter, which emits document events.
// Any transport failure or configuration anomaly aborts the whole run; the
// report is a signed acceptance artifact, so a partial document must never
// masquerade as a complete one.
package report
