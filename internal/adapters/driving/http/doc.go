// Package http exposes the gateway over a JSON HTTP API routed with gorilla/mux.
//
// Routes:
//
//	POST /api/ingest      inline text or structured content
//	POST /api/upload      multipart file upload (field "file")
//	POST /api/generate    retrieval-augmented generation
//	POST /api/search      scored retrieval without generation
//	GET  /api/status      index lifecycle state
//	GET  /api/ingestions  receipts of completed ingests
//	GET  /test            liveness probe
//
// Every error body is {"error": "..."}. Rejections from the language model
// carry the upstream text in "detail".
package http
