// Package session issues and resolves opaque bearer tokens.
//
// A Session maps a UUID v4 token to a user id for a fixed lifetime. Stores
// persist that mapping: RedisStore keeps one key per token with a native TTL,
// MemoryStore serves tests and single-process development. A user may hold
// any number of live tokens.
//
//	store := session.NewRedisStore(client)
//	s := session.NewSession(userID, 24*time.Hour)
//	if err := store.Create(ctx, s); err != nil {
//	    return err
//	}
//
// HeaderTransport reads the token from a request header (X-Token by default).
package session
