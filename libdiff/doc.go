// Package libdiff produces line diffs of document text for display.
package libdiff
