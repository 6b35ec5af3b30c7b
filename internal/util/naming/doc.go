// Package naming provides consistent naming functions for sample resources.
//
// Every run draws a short random suffix so that repeated runs never collide
// with resources left behind by earlier ones. Azure registry and webhook names
// must be alphanumeric, so the suffix never contains separators.
package naming
