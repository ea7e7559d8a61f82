// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/concurseiro/simulados/auth"
	"github.com/concurseiro/simulados/cliparse"
	"github.com/concurseiro/simulados/middleware"
	"github.com/concurseiro/simulados/models"
)

// pathID parses the {id} path segment as a positive integer.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.Invalid("id", "id must be a positive integer")
	}
	return id, nil
}

// queryID parses an optional positive integer query parameter. Missing
// parameters yield 0.
func queryID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.Invalid(name, name+" must be a positive integer")
	}
	return id, nil
}

// resolveOwner writes the error response itself and reports false when the
// request does not identify a valid owner.
func resolveOwner(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (int64, bool) {
	ownerID, err := auth.OwnerFromRequest(r, cfg.OwnerKeySalt, cfg.DefaultOwnerID)
	if errors.Is(err, auth.ErrInvalidOwnerID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Owner-ID must be a positive integer")
		return 0, false
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid owner key")
		return 0, false
	}
	return ownerID, true
}
