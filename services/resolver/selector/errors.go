package selector

import "fmt"

// SelectorError signals a malformed array-index access in a structured selector
// path. Missing keys are not errors (they route to the next failover tier);
// indexing a non-array or an out-of-range element indicates an authoring bug
// in the metric registry and is surfaced distinctly.
type SelectorError struct {
	Path    string
	Segment string
	Reason  string
}

// Error returns the string representation of the error
func (e *SelectorError) Error() string {
	return fmt.Sprintf("selector error at segment '%s' of path '%s': %s", e.Segment, e.Path, e.Reason)
}
