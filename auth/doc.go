// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves which owner a request acts for.

# Owner Keys

Owner keys use HMAC-SHA256 to create deterministic, verifiable keys:

	ownerKey := auth.GenerateOwnerKey(ownerID, salt)
	err := auth.ValidateOwnerKey(ownerID, ownerKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same owner id and salt always produce the same key, so nothing is stored.

# Request Resolution

	ownerID, err := auth.OwnerFromRequest(r, cfg.OwnerKeySalt, cfg.DefaultOwnerID)

Requests without an X-Owner-ID header act as the configured default owner,
which keeps single-tenant deployments working without credentials. A request
that names an owner must also send the matching X-Owner-Key.
*/
package auth
