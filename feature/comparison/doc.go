// Package comparison orchestrates model comparisons: it loads two stored
// model snapshots, walks the element type registry calling the comparison
// engine once per type, and persists each run as a queryable counts row plus
// a full JSON report in object storage.
package comparison
