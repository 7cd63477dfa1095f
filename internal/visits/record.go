package visits

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VisitRecord is one row of clinic attendance data.
//
// Year and Month are carried in the source file alongside Date and are treated
// as independent filterable fields; they are not re-derived from Date.
type VisitRecord struct {
	Date      time.Time
	Year      int
	Month     int
	Client    string
	Procedure string
	Quantity  int
}

// Dataset is an immutable table of visit records loaded from a single file.
//
// The ID identifies one loaded snapshot for log and metric correlation; two
// loads of the same path through a Store share the same snapshot.
type Dataset struct {
	ID       uuid.UUID
	Path     string
	LoadedAt time.Time

	records []VisitRecord
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}

// All returns every record in source order.
// The returned slice is shared with the dataset and must not be modified.
func (d *Dataset) All() []VisitRecord {
	return d.records
}

// Normalize applies the canonical text form used for client and procedure
// values: surrounding whitespace stripped, then uppercased. Grouping and
// filtering compare only normalized values, so "convenio a" and " CONVENIO A "
// are the same logical client. Normalize is idempotent.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
