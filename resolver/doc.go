// Package resolver maps free-text queries onto canonical station names.
//
// Resolution is a two-pass process: exact substring containment over the
// canonical list in feed order, then a normalized-edit-distance fuzzy pass
// over the query tokens for anything still missing. Fewer than two distinct
// stations is an ambiguous query, surfaced to the caller as a request for
// clarification.
package resolver
