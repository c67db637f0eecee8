// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives and checks counting session admin keys.

Admin keys use HMAC-SHA256 over the session ID:

	adminKey := auth.GenerateAdminKey(sessionID, salt)
	err := auth.ValidateAdminKey(sessionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same session ID and salt always produce the same key, so keys are never
written to the database. Clients send the key in the X-Admin-Key header when
uploading or minimizing ballots; ValidateRequest reads it from there.
*/
package auth
