// Package visits provides the domain logic for the clinic attendance dashboard.
//
// This package has no HTTP or UI dependencies. It covers the whole pipeline
// between the source CSV and the presentation layer:
//
//   - Loading: [Load] reads the semicolon-delimited statistics file into an
//     immutable [Dataset]; [Store] caches loaded datasets by path so a file is
//     read at most once per process.
//   - Filtering: [Dataset.Filter] computes the subset of records matching a
//     multi-valued [Selection] over year, month, procedure and client.
//   - Aggregation: [TimeSeries], [TopProcedures], [ClientDistribution] and
//     [Summarize] derive the chart and KPI views from a filtered subset.
//   - Projection: [DetailRows] produces the fixed-order detail table columns.
//
// A Dataset is read-only after construction, so it may be shared freely across
// concurrent requests without locking. All derivations are pure functions over
// a slice of records; re-filtering with the same selection always yields the
// same rows in source order.
package visits
