// Package schema defines the structured resume record and its validation.
//
// A [Resume] holds one [Contact], a list of each entry type, and a [Meta]
// block. Optional string fields use the empty string for "unset". Every
// date field, when set, must be "YYYY", "YYYY-MM", "present" or "Present";
// [Resume.Validate] reports violations as a [*ValidationError] wrapping
// [ErrInvalidDate], and structural problems wrap [ErrInvalidType].
//
// # Plain Trees
//
// [Resume.ToMap] and [FromMap] convert to and from a tree of maps, slices
// and primitives, which is the form exchanged with refinement backends and
// stored as JSON:
//
//	tree := resume.ToMap()
//	again, err := schema.FromMap(tree)
//
// # Sanitizing Untrusted Payloads
//
// [Sanitize] accepts any decoded JSON object, keeps only the known keys,
// resolves each list entry once as either a scalar or a record, coerces
// values to their declared types and validates the result. [ValidateJSON]
// checks raw JSON against the schema returned by [JSONSchema].
package schema
