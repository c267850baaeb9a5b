// Package parse turns raw model output into typed Go values.
//
// Small local models routinely emit almost-JSON for tool arguments: single
// quotes, trailing commas, markdown fences, or values wrapped in a
// {"type": ..., "value": ...} envelope copied from the schema. [ParseStringAs]
// recovers from each of these before giving up with an error.
package parse
