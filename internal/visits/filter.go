package visits

import "sort"

// Selection holds the multi-valued filter choices for the four dimensions.
//
// A nil slice means the dimension is unconstrained (every value selected,
// the default first-render state). A non-nil empty slice is an explicitly
// cleared selection and matches nothing. String values are normalized before
// matching, so callers may pass raw user input.
type Selection struct {
	Years      []int
	Months     []int
	Procedures []string
	Clients    []string
}

// Options lists the distinct values available per dimension. Years are sorted
// descending (most recent first, as the selector presents them); months
// ascending; procedures and clients lexicographically ascending.
type Options struct {
	Years      []int    `json:"years"`
	Months     []int    `json:"months"`
	Procedures []string `json:"procedures"`
	Clients    []string `json:"clients"`
}

// Options returns the available filter values for the dataset.
func (d *Dataset) Options() Options {
	years := make(map[int]struct{})
	months := make(map[int]struct{})
	procedures := make(map[string]struct{})
	clients := make(map[string]struct{})

	for _, r := range d.records {
		years[r.Year] = struct{}{}
		months[r.Month] = struct{}{}
		procedures[r.Procedure] = struct{}{}
		clients[r.Client] = struct{}{}
	}

	opts := Options{
		Years:      intKeys(years),
		Months:     intKeys(months),
		Procedures: stringKeys(procedures),
		Clients:    stringKeys(clients),
	}
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	return opts
}

// Filter returns the records matching sel, preserving source order. The four
// dimensions combine with AND; within a dimension the selected values combine
// with OR. Filter never modifies the dataset and is deterministic: the same
// selection always yields the same rows.
func (d *Dataset) Filter(sel Selection) []VisitRecord {
	years := intSet(sel.Years)
	months := intSet(sel.Months)
	procedures := stringSet(sel.Procedures)
	clients := stringSet(sel.Clients)

	out := make([]VisitRecord, 0, len(d.records))
	for _, r := range d.records {
		if years != nil {
			if _, ok := years[r.Year]; !ok {
				continue
			}
		}
		if months != nil {
			if _, ok := months[r.Month]; !ok {
				continue
			}
		}
		if procedures != nil {
			if _, ok := procedures[r.Procedure]; !ok {
				continue
			}
		}
		if clients != nil {
			if _, ok := clients[r.Client]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// intSet keeps the nil-means-unconstrained distinction: a nil slice maps to a
// nil set, an empty slice to an empty (match-nothing) set.
func intSet(vals []int) map[int]struct{} {
	if vals == nil {
		return nil
	}
	set := make(map[int]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}

func stringSet(vals []string) map[string]struct{} {
	if vals == nil {
		return nil
	}
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[Normalize(v)] = struct{}{}
	}
	return set
}

func intKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func stringKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
