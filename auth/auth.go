// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const (
	HeaderOwnerID  = "X-Owner-ID"
	HeaderOwnerKey = "X-Owner-Key"
)

var (
	ErrInvalidOwnerKey = errors.New("invalid owner key")
	ErrInvalidOwnerID  = errors.New("invalid owner id")
)

// GenerateOwnerKey creates an HMAC-based key for an owner id
// This is deterministic and verifiable
func GenerateOwnerKey(ownerID int64, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strconv.FormatInt(ownerID, 10)))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOwnerKey checks if the provided key is valid for the owner
func ValidateOwnerKey(ownerID int64, ownerKey, salt string) error {
	expected := GenerateOwnerKey(ownerID, salt)
	if !hmac.Equal([]byte(ownerKey), []byte(expected)) {
		return ErrInvalidOwnerKey
	}
	return nil
}

// OwnerFromRequest resolves the owner a request acts for.
// Requests without X-Owner-ID act as defaultOwner; requests naming an owner
// must prove it with X-Owner-Key.
func OwnerFromRequest(r *http.Request, salt string, defaultOwner int64) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(HeaderOwnerID))
	if raw == "" {
		return defaultOwner, nil
	}

	ownerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ownerID <= 0 {
		return 0, ErrInvalidOwnerID
	}

	if err := ValidateOwnerKey(ownerID, r.Header.Get(HeaderOwnerKey), salt); err != nil {
		return 0, err
	}
	return ownerID, nil
}
