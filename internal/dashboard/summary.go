package dashboard

import (
	"fmt"
	"strconv"

	"github.com/dailymotion/tessera-gen/internal/errors"
)

// Stats counts the items of a document.
type Stats struct {
	Sections int
	Rows     int
	Cells    int
	Graphs   int
	Queries  int
}

// Summarize counts the items of doc.
func Summarize(doc *Document) Stats {
	st := Stats{Sections: len(doc.Items), Queries: len(doc.Queries)}
	for _, s := range doc.Items {
		st.Rows += len(s.Items)
		for _, r := range s.Items {
			st.Cells += len(r.Items)
			for _, c := range r.Items {
				st.Graphs += len(c.Items)
			}
		}
	}
	return st
}

// Verify checks the structural guarantees of a built document: item ids
// are unique, and each graph's query key names exactly one query table
// entry that no other graph uses.
func Verify(doc *Document) error {
	seen := map[string]bool{doc.ItemID: true}
	claim := func(id string) error {
		if seen[id] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Duplicate item id %s", id),
				"")
		}
		seen[id] = true
		return nil
	}

	used := make(map[string]bool, len(doc.Queries))
	for _, s := range doc.Items {
		if err := claim(s.ItemID); err != nil {
			return err
		}
		for _, r := range s.Items {
			if err := claim(r.ItemID); err != nil {
				return err
			}
			for _, c := range r.Items {
				if err := claim(c.ItemID); err != nil {
					return err
				}
				for _, g := range c.Items {
					if err := claim(g.ItemID); err != nil {
						return err
					}
					if _, ok := doc.Queries[g.Query]; !ok {
						return errors.New(errors.ErrConfig,
							fmt.Sprintf("Graph %s points at missing query %q", g.ItemID, g.Query),
							"")
					}
					if used[g.Query] {
						return errors.New(errors.ErrConfig,
							fmt.Sprintf("Query %q is shared by several graphs", g.Query),
							"")
					}
					used[g.Query] = true
				}
			}
		}
	}

	if len(used) != len(doc.Queries) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%d queries are not used by any graph", len(doc.Queries)-len(used)),
			"")
	}
	for key, q := range doc.Queries {
		if _, err := strconv.Atoi(key); err != nil || q.Name != key {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Query key %q doesn't match its name %q", key, q.Name),
				"")
		}
	}
	return nil
}
