// Package inventory exposes inventory reconciliation over HTTP.
//
// A reconciliation reads a source and a target feed, joins them with the
// engine in core/reconcile and keeps the result as the "latest" result until the
// next run completes. Feeds are objects in the storage bucket (CSV, TSV or XLSX),
// database tables, or files uploaded with the request.
//
// # Endpoints
//
//   - POST /reconcile: reconcile two stored feeds, optionally exporting the result
//   - POST /reconcile/upload: reconcile two uploaded files
//   - GET /reconcile/latest: the last result
//   - GET /reconcile/latest/stock-status: availability report of the last result
//   - GET /reconcile/latest/:set: one result set as CSV
//   - POST /mapping/suggest: guess keys and a compare pair from two headers
//   - GET /feeds: list feed objects in the bucket
//
// # Errors
//
// Mapping problems and missing columns are answered with 400 and list every
// offending name. A request made while a reconciliation is running gets 409;
// requests are never queued.
package inventory
