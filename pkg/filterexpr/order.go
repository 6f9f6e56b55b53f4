package filterexpr

import (
	"fmt"
	"slices"
	"strings"
)

// parseOrder reads "key [asc|desc], ..." and appends the tie breaker.
func parseOrder(raw string, schema Schema) ([]Term, error) {
	limit := schema.MaxOrderTerms
	if limit <= 0 {
		limit = 2
	}

	var terms []Term
	for seg := range strings.SplitSeq(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > 2 {
			return nil, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		term := Term{Key: parts[0]}
		if !slices.Contains(schema.OrderKeys, term.Key) {
			return nil, fmt.Errorf("field %q cannot be used for ordering", term.Key)
		}
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				term.Desc = true
			default:
				return nil, fmt.Errorf("invalid direction %q for field %q", parts[1], term.Key)
			}
		}
		if hasKey(terms, term.Key) {
			return nil, fmt.Errorf("duplicate order key %q", term.Key)
		}
		if len(terms) == limit {
			return nil, fmt.Errorf("order_by supports at most %d keys", limit)
		}
		terms = append(terms, term)
	}

	if len(terms) == 0 {
		terms = slices.Clone(schema.DefaultOrder)
	}
	if schema.TieBreaker != "" && !hasKey(terms, schema.TieBreaker) {
		terms = append(terms, Term{Key: schema.TieBreaker})
	}
	return terms, nil
}

func hasKey(terms []Term, key string) bool {
	return slices.ContainsFunc(terms, func(t Term) bool { return t.Key == key })
}
