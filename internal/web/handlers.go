package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"clinicstats/internal/visits"
)

// maxTopN caps the ?n= parameter on the top-procedures feed.
const maxTopN = 100

// handleIndex serves the dashboard page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleOptions returns the distinct filter values of the dataset.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.dataset.Options())
}

// parseSelection builds a Selection from query parameters.
//
// Each dimension is a comma-separated list. A parameter that is absent means
// "no restriction"; a parameter that is present but empty means the user
// cleared the selection and no row matches.
func parseSelection(q url.Values) (visits.Selection, error) {
	var sel visits.Selection
	var err error

	if q.Has("years") {
		if sel.Years, err = parseIntList(q.Get("years")); err != nil {
			return sel, fmt.Errorf("years: %w", err)
		}
	}
	if q.Has("months") {
		if sel.Months, err = parseIntList(q.Get("months")); err != nil {
			return sel, fmt.Errorf("months: %w", err)
		}
	}
	if q.Has("procedures") {
		sel.Procedures = parseStringList(q.Get("procedures"))
	}
	if q.Has("clients") {
		sel.Clients = parseStringList(q.Get("clients"))
	}
	return sel, nil
}

// parseIntList parses a comma-separated list of integers. An empty value
// yields an empty, non-nil slice.
func parseIntList(value string) ([]int, error) {
	out := []int{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseStringList splits a comma-separated list. An empty value yields an
// empty, non-nil slice.
func parseStringList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// filteredView resolves the request's selection against the dataset. On a
// parse failure it writes the error response and reports ok=false.
func (s *Server) filteredView(w http.ResponseWriter, r *http.Request) ([]visits.VisitRecord, bool) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		s.respondBadRequest(w, r, err.Error())
		return nil, false
	}
	return s.dataset.Filter(sel), true
}

// dashboardPayload bundles every panel of the dashboard in one response so
// the page can refresh with a single round trip.
type dashboardPayload struct {
	Summary            visits.Summary      `json:"summary"`
	TimeSeries         []visits.DailyTotal `json:"time_series"`
	TopProcedures      []visits.GroupTotal `json:"top_procedures"`
	ClientDistribution []visits.GroupTotal `json:"client_distribution"`
	Columns            []string            `json:"columns"`
	Rows               [][]string          `json:"rows"`
	Empty              bool                `json:"empty"`
}

// handleDashboard returns all dashboard panels for the current selection.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	rows := visits.DetailRows(view)
	writeJSON(w, dashboardPayload{
		Summary:            visits.Summarize(view),
		TimeSeries:         visits.TimeSeries(view),
		TopProcedures:      visits.TopProcedures(view, visits.DefaultTopN),
		ClientDistribution: visits.ClientDistribution(view),
		Columns:            visits.DetailColumns,
		Rows:               rows,
		Empty:              len(view) == 0,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	writeJSON(w, visits.Summarize(view))
}

func (s *Server) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	writeJSON(w, visits.TimeSeries(view))
}

func (s *Server) handleTopProcedures(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	n := visits.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxTopN {
			s.respondBadRequest(w, r, fmt.Sprintf("n must be between 1 and %d", maxTopN))
			return
		}
		n = parsed
	}
	writeJSON(w, visits.TopProcedures(view, n))
}

func (s *Server) handleClientDistribution(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	writeJSON(w, visits.ClientDistribution(view))
}

// recordsPayload carries the detail table of the current selection.
type recordsPayload struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	RecordCount int        `json:"record_count"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	writeJSON(w, recordsPayload{
		Columns:     visits.DetailColumns,
		Rows:        visits.DetailRows(view),
		RecordCount: len(view),
	})
}

// handleExport streams the filtered detail table as a semicolon-delimited
// CSV download, matching the format the dashboard ingests.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("atendimentos_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(visits.DetailColumns); err != nil {
		return
	}
	for _, row := range visits.DetailRows(view) {
		if err := cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
}

// healthPayload reports liveness and basic dataset facts.
type healthPayload struct {
	Status     string    `json:"status"`
	DatasetID  string    `json:"dataset_id"`
	File       string    `json:"file"`
	Records    int       `json:"records"`
	LoadedAt   time.Time `json:"loaded_at"`
	ServerTime time.Time `json:"server_time"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthPayload{
		Status:     "ok",
		DatasetID:  s.dataset.ID.String(),
		File:       filepath.Base(s.dataset.Path),
		Records:    s.dataset.Len(),
		LoadedAt:   s.dataset.LoadedAt,
		ServerTime: time.Now().UTC(),
	})
}
