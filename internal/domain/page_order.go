package domain

import (
	"fmt"
	"sort"
)

// OrderState is the lifecycle state of a PageOrder
type OrderState int

const (
	OrderUninitialized OrderState = iota
	OrderReady
)

func (s OrderState) String() string {
	if s == OrderReady {
		return "ready"
	}
	return "uninitialized"
}

const (
	reverseLabelBackToFront = "Reverse Order (Back to Front)"
	reverseLabelFrontToBack = "Reverse Order (Front to Back)"
)

// PageEntry is one page of the source document as shown in the sort view.
// Its display position is its index in the owning PageOrder.
type PageEntry struct {
	originalIndex int
}

// OriginalIndex is the 0-based position of the page in the source document
func (e PageEntry) OriginalIndex() int {
	return e.originalIndex
}

// PageOrder is the display order of a document's pages.
//
// Once Ready it always holds every original index in [0, PageCount) exactly
// once. Every operation other than Initialize is a no-op while uninitialized,
// and invalid moves are ignored instead of reported: they come from drag
// gestures that can race with re-rendering on the client.
type PageOrder struct {
	entries   []PageEntry
	pageCount int
	reversed  bool
	state     OrderState
}

// NewPageOrder returns an uninitialized page order
func NewPageOrder() *PageOrder {
	return &PageOrder{}
}

// Initialize builds the identity order for a document of pageCount pages,
// discarding any previous order. A count of zero or less yields an empty,
// ready order.
func (o *PageOrder) Initialize(pageCount int) {
	if pageCount < 0 {
		pageCount = 0
	}
	o.entries = make([]PageEntry, pageCount)
	for i := range o.entries {
		o.entries[i] = PageEntry{originalIndex: i}
	}
	o.pageCount = pageCount
	o.reversed = false
	o.state = OrderReady
}

// State reports whether Initialize has been called
func (o *PageOrder) State() OrderState {
	return o.state
}

// PageCount is the count passed to Initialize
func (o *PageOrder) PageCount() int {
	return o.pageCount
}

// Reversed reports the label flag toggled by Reverse
func (o *PageOrder) Reversed() bool {
	return o.reversed
}

// ReverseLabel is the text for the reverse button
func (o *PageOrder) ReverseLabel() string {
	if o.reversed {
		return reverseLabelFrontToBack
	}
	return reverseLabelBackToFront
}

// Entries returns a copy of the entries in display order
func (o *PageOrder) Entries() []PageEntry {
	out := make([]PageEntry, len(o.entries))
	copy(out, o.entries)
	return out
}

// Reverse reverses the current display order, whatever it is, and toggles
// the label flag.
func (o *PageOrder) Reverse() {
	if o.state != OrderReady {
		return
	}
	for i, j := 0, len(o.entries)-1; i < j; i, j = i+1, j-1 {
		o.entries[i], o.entries[j] = o.entries[j], o.entries[i]
	}
	o.reversed = !o.reversed
}

// MoveEntry removes the entry at source and reinserts it directly before, or
// after when insertAfter is set, the entry that was at target. It reports
// whether anything moved.
func (o *PageOrder) MoveEntry(source, target int, insertAfter bool) bool {
	if o.state != OrderReady {
		return false
	}
	n := len(o.entries)
	if source == target || source < 0 || source >= n || target < 0 || target >= n {
		return false
	}

	moved := o.entries[source]
	rest := make([]PageEntry, 0, n)
	rest = append(rest, o.entries[:source]...)
	rest = append(rest, o.entries[source+1:]...)

	// target's index in rest shifts down by one when the source sat before it
	at := target
	if source < target {
		at--
	}
	if insertAfter {
		at++
	}

	out := make([]PageEntry, 0, n)
	out = append(out, rest[:at]...)
	out = append(out, moved)
	out = append(out, rest[at:]...)
	o.entries = out
	return true
}

// Reset restores ascending original order and clears the label flag
func (o *PageOrder) Reset() {
	if o.state != OrderReady {
		return
	}
	sort.Slice(o.entries, func(i, j int) bool {
		return o.entries[i].originalIndex < o.entries[j].originalIndex
	})
	o.reversed = false
}

// FinalOrder returns the original indices in display order
func (o *PageOrder) FinalOrder() []int {
	out := make([]int, len(o.entries))
	for i, e := range o.entries {
		out[i] = e.originalIndex
	}
	return out
}

// IdentityOrder returns [0, 1, ..., n-1]
func IdentityOrder(n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ValidatePermutation checks that order holds every index of [0, pageCount)
// exactly once.
func ValidatePermutation(order []int, pageCount int) error {
	if len(order) != pageCount {
		return &ValidationError{
			Field:   "order",
			Message: fmt.Sprintf("expected %d pages, got %d", pageCount, len(order)),
		}
	}
	seen := make([]bool, pageCount)
	for _, idx := range order {
		if idx < 0 || idx >= pageCount {
			return &ValidationError{Field: "order", Message: fmt.Sprintf("page index %d out of range", idx)}
		}
		if seen[idx] {
			return &ValidationError{Field: "order", Message: fmt.Sprintf("page index %d repeated", idx)}
		}
		seen[idx] = true
	}
	return nil
}

// OrderForBuild returns the order to hand to page assembly. A corrupted
// order falls back to the original page order; the returned error says why.
func OrderForBuild(order []int, pageCount int) ([]int, error) {
	if err := ValidatePermutation(order, pageCount); err != nil {
		return IdentityOrder(pageCount), err
	}
	return order, nil
}
