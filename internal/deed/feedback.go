package deed

import (
	"fmt"
	"strings"
)

// ComposeFeedback renders field results into the single human-readable string
// shown to the trainee after submitting. One clause per field, joined with
// ". " and closed with a trailing period. With nothing graded it returns the
// literal "Attempt saved.".
func ComposeFeedback(results []FieldResult) string {
	if len(results) == 0 {
		return "Attempt saved."
	}
	clauses := make([]string, 0, len(results))
	for _, r := range results {
		if r.Passed {
			clauses = append(clauses, r.Label+" correct")
		} else {
			clauses = append(clauses, fmt.Sprintf(`%s mismatch: expected "%s" but got "%s"`, r.Label, r.Expected, r.Got))
		}
	}
	return strings.Join(clauses, ". ") + "."
}
