package auth

import (
	"net/http"
	"strings"
)

// UserIDHeader carries the device-generated ledger owner ID.
const UserIDHeader = "X-User-Id"

// Authenticator resolves the ledger owner of a request.
// This abstraction allows swapping identity schemes without changing the
// middleware or service layer.
type Authenticator interface {
	// Identify returns the owner ID for the request headers.
	// Returns an error if the request carries invalid credentials.
	Identify(header http.Header) (string, error)
}

// DeviceAuthenticator identifies owners by device ID.
//
// Resolution order:
//  1. Authorization: Bearer <token>, which must be valid when present
//  2. the X-User-Id header
//  3. the configured default owner
type DeviceAuthenticator struct {
	jwt           *JWTManager
	defaultUserID string
}

// NewDeviceAuthenticator creates an authenticator. jwtManager may be nil to
// disable bearer tokens; an empty defaultUserID makes identification mandatory.
func NewDeviceAuthenticator(jwtManager *JWTManager, defaultUserID string) *DeviceAuthenticator {
	return &DeviceAuthenticator{jwt: jwtManager, defaultUserID: defaultUserID}
}

// Identify implements Authenticator.
func (a *DeviceAuthenticator) Identify(header http.Header) (string, error) {
	if authHeader := header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || a.jwt == nil {
			return "", ErrInvalidToken
		}
		claims, err := a.jwt.Validate(parts[1])
		if err != nil {
			return "", err
		}
		return claims.UserID, nil
	}

	if userID := strings.TrimSpace(header.Get(UserIDHeader)); userID != "" {
		return userID, nil
	}

	if a.defaultUserID == "" {
		return "", ErrMissingToken
	}
	return a.defaultUserID, nil
}
