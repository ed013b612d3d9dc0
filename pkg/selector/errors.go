package selector

import (
	"fmt"
	"strings"
)

// AmbiguousMatchError reports a filter that resolved to zero or more
// than one record where exactly one was required. It lists the
// candidates so the operator can tighten or loosen the pattern.
type AmbiguousMatchError struct {
	What       string
	Pattern    string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no %s matches pattern %q; adjust the filter", e.What, e.Pattern)
	}
	return fmt.Sprintf("pattern %q matches %d %ss (%s); adjust the filter so exactly one matches",
		e.Pattern, len(e.Candidates), e.What, strings.Join(e.Candidates, ", "))
}

// NoRecordsError reports that the provider returned zero records of a
// kind the account must have at least one of.
type NoRecordsError struct {
	What string
}

func (e *NoRecordsError) Error() string {
	return fmt.Sprintf("the account has no %ss; create one in the provider console first", e.What)
}

// EmptyCandidateSetError reports an instance-type filter that matched
// nothing in the catalog.
type EmptyCandidateSetError struct {
	Pattern string
	Catalog []string
}

func (e *EmptyCandidateSetError) Error() string {
	return fmt.Sprintf("type pattern %q matches no known instance type; known types: %s",
		e.Pattern, strings.Join(e.Catalog, ", "))
}
