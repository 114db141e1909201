// Package session keeps running battleship matches in memory.
//
// A Manager maps short match IDs to service.Session values. Each session
// owns one engine.Match plus the rules it was created with and its creation
// and last access times. The service layer locks a session before touching
// its match; the Manager only guards its own map.
//
// IDs:
//
// Callers may pick an ID or pass "" to get a random 4-character hex one.
// IDs are compared without regard to case, so "AB12" and "ab12" name the
// same match. IDs containing spaces, slashes, '?' or '#' are rejected
// because they end up in URL paths.
//
// Expiry:
//
// Nothing is written to disk. A match lives until it is deleted or until
// CleanupExpiredSessions finds it idle for longer than the given age,
// whatever phase it is in.
//
// Usage:
//
//	manager := session.NewManager()
//	sess, err := manager.Create("", engine.DefaultMatchConfig())
//	if err != nil {
//		return err
//	}
//	sess, err = manager.Get(sess.ID)
//
//	// in a background loop
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
