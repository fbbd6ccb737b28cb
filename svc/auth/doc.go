// Package auth manages accounts and token sessions.
//
// Service.Connect exchanges a Basic authorization header for an opaque token
// stored in a session.Store; Service.Disconnect revokes it. Passwords are
// stored as hex SHA-1 digests (see PasswordDigest).
//
// Gate resolves tokens to user ids. RequireUser and OptionalUser are chi
// compatible middlewares that read the X-Token header and put the user id in
// the request context:
//
//	gate := auth.NewGate(sessionStore)
//	r.With(gate.RequireUser(errorHandler)).Get("/users/me", me)
//
//	userID := auth.UserIDFromContext(r.Context())
//
// Registration enqueues a WelcomeJob handled by NewWelcomeHandler in the
// worker process.
package auth
