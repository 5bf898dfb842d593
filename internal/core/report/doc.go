// Package report holds the display-mode state machine for report cells and
// the collection that maps an ordered sequence of records onto cells.
//
// Nothing in this package performs I/O or can fail. Cells are mutated only
// from the UI event loop.
package report
