// Package api serves the split pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz                          liveness and build version
//	GET  /v1/trace-types                   registered trace types
//	GET  /v1/transforms                    registered transforms and their attributes
//	GET  /v1/transforms/{name}/defaults    resolved options of an empty entry
//	POST /v1/transforms/{name}/defaults    resolved options of the posted entry
//	POST /v1/split                         split a figure
//
// POST /v1/split accepts a figure, optionally with pipeline options:
//
//	{"data": [...], "layout": {...}, "options": {"workers": 4, "refresh": true}}
//
// and answers with the resolved output traces, the index of the input each
// came from, and run statistics.
//
// Errors are JSON objects with a machine-readable code:
//
//	{"error": {"code": "UNKNOWN_TRANSFORM", "message": "..."}, "request_id": "..."}
//
// Caller mistakes (malformed figures, unknown types) answer 4xx; anything
// else answers 500 and is reported to the HTTP observability hooks.
package api
