package visits

import (
	"reflect"
	"testing"
)

func TestDetailRows_FixedColumnOrder(t *testing.T) {
	ds := mustParse(t, sampleCSV)
	rows := DetailRows(ds.All())

	if len(rows) != ds.Len() {
		t.Fatalf("rows = %d, want %d", len(rows), ds.Len())
	}

	want := []string{"2024", "1", "CONVENIO A", "CONSULTA", "3", "2024-01-05"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("rows[0] = %v, want %v", rows[0], want)
	}
}

func TestProject_SubsetAndOrder(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	rows, err := Project(ds.All(), []string{"Procedimento", "Quantidade"})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if want := []string{"CONSULTA", "3"}; !reflect.DeepEqual(rows[0], want) {
		t.Errorf("rows[0] = %v, want %v", rows[0], want)
	}
}

func TestProject_UnknownColumn(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	if _, err := Project(ds.All(), []string{"Foo"}); err == nil {
		t.Fatal("Project() expected error for unknown column")
	}
}
