package visits

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	ds := mustParse(t, sampleCSV)
	sum := Summarize(ds.All())

	if sum.TotalQuantity != 10 {
		t.Errorf("TotalQuantity = %d, want 10", sum.TotalQuantity)
	}
	if sum.RecordCount != 4 {
		t.Errorf("RecordCount = %d, want 4", sum.RecordCount)
	}
}

func TestTimeSeries(t *testing.T) {
	// Two records share 2024-01-05 and must merge into one point.
	data := `Data;Ano;Mes;Cliente;Procedimento;Quantidade
2024-01-06;2024;1;A;P1;2
2024-01-05;2024;1;A;P1;3
2024-01-05;2024;1;B;P2;4
`
	ds := mustParse(t, data)
	series := TimeSeries(ds.All())

	want := []DailyTotal{
		{Date: "2024-01-05", Total: 7},
		{Date: "2024-01-06", Total: 2},
	}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("TimeSeries() = %v, want %v", series, want)
	}
}

func TestClientDistribution_SumsToTotal(t *testing.T) {
	ds := mustParse(t, sampleCSV)
	view := ds.All()

	dist := ClientDistribution(view)
	var sum int64
	for _, g := range dist {
		sum += g.Total
	}
	if total := Summarize(view).TotalQuantity; sum != total {
		t.Errorf("distribution sum = %d, want %d", sum, total)
	}

	labels := make([]string, len(dist))
	for i, g := range dist {
		labels[i] = g.Label
	}
	if want := []string{"CONVENIO A", "CONVENIO B", "PARTICULAR"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestClientDistribution_MergesNormalizedVariants(t *testing.T) {
	data := `Data;Ano;Mes;Cliente;Procedimento;Quantidade
2024-01-05;2024;1;convenio a; consulta ;3
2024-01-06;2024;1;CONVENIO A;CONSULTA;2
`
	ds := mustParse(t, data)
	dist := ClientDistribution(ds.All())

	want := []GroupTotal{{Label: "CONVENIO A", Total: 5}}
	if !reflect.DeepEqual(dist, want) {
		t.Errorf("ClientDistribution() = %v, want %v", dist, want)
	}
}

func topFixture(t *testing.T, groups int) []VisitRecord {
	t.Helper()
	var b strings.Builder
	b.WriteString("Data;Ano;Mes;Cliente;Procedimento;Quantidade\n")
	for i := 0; i < groups; i++ {
		// PROC-00 gets quantity 1, PROC-01 gets 2, and so on.
		fmt.Fprintf(&b, "2024-01-05;2024;1;X;PROC-%02d;%d\n", i, i+1)
	}
	return mustParse(t, b.String()).All()
}

func TestTopProcedures_LimitsAndDominates(t *testing.T) {
	view := topFixture(t, 15)
	top := TopProcedures(view, DefaultTopN)

	if len(top) != DefaultTopN {
		t.Fatalf("len = %d, want %d", len(top), DefaultTopN)
	}

	// Ascending presentation order: largest group last.
	for i := 1; i < len(top); i++ {
		if top[i].Total < top[i-1].Total {
			t.Errorf("totals not ascending at index %d: %v", i, top)
		}
	}

	// Every kept group dominates every excluded one. The 15-group fixture has
	// totals 1..15, so the kept minimum must be 6.
	if top[0].Total != 6 {
		t.Errorf("smallest kept total = %d, want 6", top[0].Total)
	}
	if top[len(top)-1].Total != 15 {
		t.Errorf("largest kept total = %d, want 15", top[len(top)-1].Total)
	}
}

func TestTopProcedures_FewerGroupsThanN(t *testing.T) {
	view := topFixture(t, 3)
	top := TopProcedures(view, DefaultTopN)
	if len(top) != 3 {
		t.Errorf("len = %d, want 3", len(top))
	}
}

func TestTopProcedures_TieBreakIsDeterministic(t *testing.T) {
	data := `Data;Ano;Mes;Cliente;Procedimento;Quantidade
2024-01-05;2024;1;X;BETA;5
2024-01-05;2024;1;X;ALFA;5
2024-01-05;2024;1;X;GAMA;9
`
	ds := mustParse(t, data)

	top := TopProcedures(ds.All(), 2)
	// GAMA wins outright; the 5-5 tie resolves to ALFA by name.
	want := []GroupTotal{{Label: "ALFA", Total: 5}, {Label: "GAMA", Total: 9}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("TopProcedures() = %v, want %v", top, want)
	}

	again := TopProcedures(ds.All(), 2)
	if !reflect.DeepEqual(top, again) {
		t.Error("TopProcedures() is not deterministic")
	}
}

func TestAggregates_EmptyView(t *testing.T) {
	if s := TimeSeries(nil); len(s) != 0 {
		t.Errorf("TimeSeries(nil) = %v, want empty", s)
	}
	if d := ClientDistribution(nil); len(d) != 0 {
		t.Errorf("ClientDistribution(nil) = %v, want empty", d)
	}
	if top := TopProcedures(nil, DefaultTopN); len(top) != 0 {
		t.Errorf("TopProcedures(nil) = %v, want empty", top)
	}
	if sum := Summarize(nil); sum.TotalQuantity != 0 || sum.RecordCount != 0 {
		t.Errorf("Summarize(nil) = %+v, want zeros", sum)
	}
}
