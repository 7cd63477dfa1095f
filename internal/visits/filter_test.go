package visits

import (
	"reflect"
	"testing"
)

func TestOptions_Ordering(t *testing.T) {
	ds := mustParse(t, sampleCSV)
	opts := ds.Options()

	if want := []int{2024, 2023}; !reflect.DeepEqual(opts.Years, want) {
		t.Errorf("Years = %v, want %v (descending)", opts.Years, want)
	}
	if want := []int{1, 2, 12}; !reflect.DeepEqual(opts.Months, want) {
		t.Errorf("Months = %v, want %v (ascending)", opts.Months, want)
	}
	if want := []string{"CONSULTA", "RAIO-X", "ULTRASSOM"}; !reflect.DeepEqual(opts.Procedures, want) {
		t.Errorf("Procedures = %v, want %v", opts.Procedures, want)
	}
	if want := []string{"CONVENIO A", "CONVENIO B", "PARTICULAR"}; !reflect.DeepEqual(opts.Clients, want) {
		t.Errorf("Clients = %v, want %v", opts.Clients, want)
	}
}

func TestFilter_DefaultSelectionIsIdentity(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	view := ds.Filter(Selection{})
	if len(view) != ds.Len() {
		t.Fatalf("Filter(all) rows = %d, want %d", len(view), ds.Len())
	}
	if !reflect.DeepEqual(view, ds.All()) {
		t.Error("Filter(all) should return the full table in source order")
	}
}

func TestFilter_AllOptionsSelectedIsIdentity(t *testing.T) {
	ds := mustParse(t, sampleCSV)
	opts := ds.Options()

	view := ds.Filter(Selection{
		Years:      opts.Years,
		Months:     opts.Months,
		Procedures: opts.Procedures,
		Clients:    opts.Clients,
	})
	if !reflect.DeepEqual(view, ds.All()) {
		t.Error("filtering with every available value selected should be identity")
	}
}

func TestFilter_EmptySetYieldsNoRows(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	tests := []struct {
		name string
		sel  Selection
	}{
		{"empty years", Selection{Years: []int{}}},
		{"empty months", Selection{Months: []int{}}},
		{"empty procedures", Selection{Procedures: []string{}}},
		{"empty clients", Selection{Clients: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if view := ds.Filter(tt.sel); len(view) != 0 {
				t.Errorf("Filter() rows = %d, want 0", len(view))
			}
		})
	}
}

func TestFilter_AndAcrossDimensions(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	view := ds.Filter(Selection{
		Years:   []int{2024},
		Clients: []string{"CONVENIO A"},
	})
	if len(view) != 2 {
		t.Fatalf("Filter() rows = %d, want 2", len(view))
	}
	for _, r := range view {
		if r.Year != 2024 || r.Client != "CONVENIO A" {
			t.Errorf("unexpected row in view: %+v", r)
		}
	}
}

func TestFilter_NormalizesInput(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	// Raw lowercase input must match the normalized stored values.
	view := ds.Filter(Selection{Clients: []string{" convenio a "}})
	if len(view) != 2 {
		t.Errorf("Filter() rows = %d, want 2", len(view))
	}
}

func TestFilter_UnknownYearYieldsEmpty(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	view := ds.Filter(Selection{Years: []int{1999}})
	if len(view) != 0 {
		t.Fatalf("Filter() rows = %d, want 0", len(view))
	}

	sum := Summarize(view)
	if sum.TotalQuantity != 0 || sum.RecordCount != 0 {
		t.Errorf("Summarize(empty) = %+v, want zeros", sum)
	}
}

func TestFilter_StableAndIdempotent(t *testing.T) {
	ds := mustParse(t, sampleCSV)
	sel := Selection{Years: []int{2024}}

	first := ds.Filter(sel)
	second := ds.Filter(sel)
	if !reflect.DeepEqual(first, second) {
		t.Error("filtering twice with the same selection returned different rows")
	}

	// The result must be a subsequence of the source table.
	src := ds.All()
	pos := 0
	for _, r := range first {
		for pos < len(src) && !reflect.DeepEqual(src[pos], r) {
			pos++
		}
		if pos == len(src) {
			t.Fatal("filtered rows are not an order-preserving subset of the source")
		}
		pos++
	}
}

func TestFilter_DoesNotMutateDataset(t *testing.T) {
	ds := mustParse(t, sampleCSV)
	before := make([]VisitRecord, ds.Len())
	copy(before, ds.All())

	ds.Filter(Selection{Years: []int{2023}})

	if !reflect.DeepEqual(before, ds.All()) {
		t.Error("Filter() mutated the source dataset")
	}
}
