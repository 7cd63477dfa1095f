package visits

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Required source columns, case-sensitive, as produced by the consolidation
// step upstream of this dashboard.
const (
	colDate      = "Data"
	colYear      = "Ano"
	colMonth     = "Mes"
	colClient    = "Cliente"
	colProcedure = "Procedimento"
	colQuantity  = "Quantidade"
)

var requiredColumns = []string{colDate, colYear, colMonth, colClient, colProcedure, colQuantity}

// Accepted date layouts: ISO first, then Brazilian day-first. Two-digit years
// are not accepted; the consolidated export always writes four digits.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
}

// Load reads the semicolon-delimited statistics file at path into a Dataset.
//
// It fails with ErrNotFound when the path does not resolve to a readable file
// and with *ParseError for malformed content: missing columns, unparseable
// dates or integers, negative quantities, months outside 1-12. On any error
// no partially constructed dataset is returned.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(path, f)
}

// Parse reads statistics rows from r. Split out from Load so tests and other
// callers can parse from any reader; path is used only in error messages.
func Parse(path string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Path: path, Kind: KindMalformed, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &ParseError{Path: path, Line: 1, Kind: KindMalformed, Err: err}
	}

	idx := headerIndex(header)
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &ParseError{Path: path, Field: col, Kind: KindMissingColumn,
				Err: fmt.Errorf("missing required column %q", col)}
		}
	}

	var records []VisitRecord
	line := 1 // header was line 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Kind: KindMalformed, Err: err}
		}

		if rowEmpty(row) {
			continue
		}

		rec, perr := buildRecord(row, idx)
		if perr != nil {
			perr.Path = path
			perr.Line = line
			return nil, perr
		}
		records = append(records, rec)
	}

	return &Dataset{
		ID:       uuid.New(),
		Path:     path,
		LoadedAt: time.Now(),
		records:  records,
	}, nil
}

// headerIndex maps column names to positions. First occurrence wins when a
// header name repeats. A UTF-8 BOM on the first cell is stripped.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, exists := idx[h]; !exists {
			idx[h] = i
		}
	}
	return idx
}

func rowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func buildRecord(row []string, idx map[string]int) (VisitRecord, *ParseError) {
	cell := func(col string) string {
		pos := idx[col]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	date, ok := parseDate(cell(colDate))
	if !ok {
		return VisitRecord{}, &ParseError{Field: colDate, Kind: KindBadDate,
			Err: fmt.Errorf("unparseable date %q", cell(colDate))}
	}

	year, err := strconv.Atoi(cell(colYear))
	if err != nil {
		return VisitRecord{}, &ParseError{Field: colYear, Kind: KindBadNumber,
			Err: fmt.Errorf("invalid year %q", cell(colYear))}
	}

	month, err := strconv.Atoi(cell(colMonth))
	if err != nil || month < 1 || month > 12 {
		return VisitRecord{}, &ParseError{Field: colMonth, Kind: KindBadNumber,
			Err: fmt.Errorf("invalid month %q", cell(colMonth))}
	}

	qty, err := strconv.Atoi(cell(colQuantity))
	if err != nil || qty < 0 {
		return VisitRecord{}, &ParseError{Field: colQuantity, Kind: KindBadNumber,
			Err: fmt.Errorf("invalid quantity %q", cell(colQuantity))}
	}

	return VisitRecord{
		Date:      date,
		Year:      year,
		Month:     month,
		Client:    Normalize(cell(colClient)),
		Procedure: Normalize(cell(colProcedure)),
		Quantity:  qty,
	}, nil
}

// parseDate tries the accepted layouts and truncates to day precision in UTC.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Store caches loaded datasets by path so each file is read at most once per
// process. Datasets are immutable, so one snapshot may be shared by any number
// of concurrent sessions.
type Store struct {
	mu     sync.RWMutex
	byPath map[string]*Dataset
}

// NewStore creates an empty dataset cache.
func NewStore() *Store {
	return &Store{byPath: make(map[string]*Dataset)}
}

// Open returns the cached dataset for path, loading it on first use.
// Load errors are not cached; a later call retries the read.
func (s *Store) Open(path string) (*Dataset, error) {
	s.mu.RLock()
	ds, ok := s.byPath[path]
	s.mu.RUnlock()
	if ok {
		return ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock.
	if ds, ok := s.byPath[path]; ok {
		return ds, nil
	}

	ds, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.byPath[path] = ds
	return ds, nil
}
