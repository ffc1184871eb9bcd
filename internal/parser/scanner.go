package parser

import (
	"strings"

	"github.com/finlytics-dev/finlytics/internal/config"
)

// scanState is the position of the TableScanner within a document.
type scanState int

const (
	// beforeTable: still in the statement's header/intro section.
	beforeTable scanState = iota
	// inTable: a start marker has been seen; stays set for the rest of
	// the document.
	inTable
)

// LineClass is the scanner's verdict on a single line.
type LineClass int

const (
	// LinePreamble is a line before any table start marker. Always
	// discarded, even if it would otherwise look like a transaction row.
	LinePreamble LineClass = iota
	// LineTableStart is the marker line that switches the scanner into the
	// table. The marker line itself is never a transaction.
	LineTableStart
	// LineNoise is a table-header or summary line inside the table.
	LineNoise
	// LineCandidate is passed on to the decomposer for final acceptance.
	LineCandidate
)

// TableScanner finds the transaction table region in a statement's line
// sequence. It is a two-state automaton: the transition out of beforeTable
// fires on the first start-marker line and is irreversible, on the
// assumption of one contiguous table region per document.
type TableScanner struct {
	layout *config.Layout
	state  scanState
}

// NewTableScanner returns a scanner in the beforeTable state.
func NewTableScanner(layout *config.Layout) *TableScanner {
	return &TableScanner{layout: layout, state: beforeTable}
}

// InTable reports whether the start marker has been seen.
func (s *TableScanner) InTable() bool {
	return s.state == inTable
}

// Classify consumes one trimmed line and returns its class, advancing the
// scanner state when a start marker is seen.
func (s *TableScanner) Classify(line string) LineClass {
	low := strings.ToLower(line)

	if s.state == beforeTable {
		if containsAny(low, s.layout.StartMarkers) {
			s.state = inTable
			return LineTableStart
		}
		return LinePreamble
	}

	if containsAny(low, s.layout.HeaderWords) {
		return LineNoise
	}
	return LineCandidate
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
