// Package api exposes the account, file and status services over HTTP.
//
// Routes:
//
//	GET  /status                  {redis, db}
//	GET  /stats                   {users, files}
//	POST /users                   register
//	GET  /connect                 Basic auth, returns {token}
//	GET  /disconnect              X-Token
//	GET  /users/me                X-Token
//	POST /files                   X-Token
//	GET  /files                   X-Token, ?parentId=&page=
//	GET  /files/{id}              X-Token
//	PUT  /files/{id}/publish      X-Token
//	PUT  /files/{id}/unpublish    X-Token
//	GET  /files/{id}/data         optional X-Token, ?size=100|250|500
//
// Errors are written as {"error": "<message>"}; MapError holds the
// messages of the service errors.
//
// When RouterOptions.CredentialLimiter is set, /connect and POST /users are
// throttled per route and client IP and answer 429 once the bucket is empty.
package api
