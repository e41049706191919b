package upsell

import "strings"

// BuildCollectionFilter builds the disjunctive catalog query string, one
// collection:<handle> clause per handle, ORed together. Handles are quoted
// and escaped so query-significant characters cannot break the filter.
func BuildCollectionFilter(handles []string) string {
	clauses := make([]string, 0, len(handles))
	for _, h := range handles {
		if h == "" {
			continue
		}
		clauses = append(clauses, "collection:"+quoteHandle(h))
	}
	return strings.Join(clauses, " OR ")
}

func quoteHandle(h string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(h) + `"`
}
