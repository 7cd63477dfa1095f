package visits

import (
	"fmt"
	"strconv"
)

// DetailColumns is the fixed display order of the detail table.
var DetailColumns = []string{colYear, colMonth, colClient, colProcedure, colQuantity, colDate}

// Project returns view restricted to exactly the given columns in the given
// order, as display strings. Dates render as 2006-01-02. An unknown column
// name is an error.
func Project(view []VisitRecord, columns []string) ([][]string, error) {
	extractors := make([]func(VisitRecord) string, len(columns))
	for i, col := range columns {
		ex, ok := columnExtractors[col]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		extractors[i] = ex
	}

	rows := make([][]string, len(view))
	for i, r := range view {
		row := make([]string, len(extractors))
		for j, ex := range extractors {
			row[j] = ex(r)
		}
		rows[i] = row
	}
	return rows, nil
}

// DetailRows projects view onto the fixed detail table columns.
func DetailRows(view []VisitRecord) [][]string {
	rows, err := Project(view, DetailColumns)
	if err != nil {
		// DetailColumns only names known columns.
		panic(err)
	}
	return rows
}

var columnExtractors = map[string]func(VisitRecord) string{
	colDate:      func(r VisitRecord) string { return r.Date.Format("2006-01-02") },
	colYear:      func(r VisitRecord) string { return strconv.Itoa(r.Year) },
	colMonth:     func(r VisitRecord) string { return strconv.Itoa(r.Month) },
	colClient:    func(r VisitRecord) string { return r.Client },
	colProcedure: func(r VisitRecord) string { return r.Procedure },
	colQuantity:  func(r VisitRecord) string { return strconv.Itoa(r.Quantity) },
}
