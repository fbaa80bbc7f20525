// Package model manages stored model documents: upload, listing and deletion
// of JSON model versions, their metadata rows, and the parsed snapshots the
// comparison feature consumes. Documents live in object storage under
// models/<id>.json; parsed snapshots are cached with a TTL and singleflight
// build control.
package model
