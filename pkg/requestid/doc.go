// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a well-formed client supplied X-Request-ID header or
// generates a UUID, stores it in the request context and echoes it back in
// the response. LoggerExtractor plugs the id into logger.New so every log
// record written with the request context carries "request_id".
package requestid
