package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, true)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.True(t, claims.IsStaff)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 7}).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = ParseToken(forged)
	assert.Error(t, err)
}

func TestCheckTokenMiddleware(t *testing.T) {
	staffToken, err := GenerateToken(1, true)
	require.NoError(t, err)
	userToken, err := GenerateToken(2, false)
	require.NoError(t, err)

	var seenID int
	handler := CheckTokenMiddleware()(RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	testCases := []struct {
		name       string
		header     string
		statusCode int
	}{
		{name: "Missing header", header: "", statusCode: http.StatusUnauthorized},
		{name: "Bearer scheme", header: "Bearer " + staffToken, statusCode: http.StatusUnauthorized},
		{name: "Garbage token", header: "token abc", statusCode: http.StatusUnauthorized},
		{name: "Not staff", header: "token " + userToken, statusCode: http.StatusForbidden},
		{name: "Staff", header: "token " + staffToken, statusCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.statusCode, rec.Code)
			if tc.statusCode != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
	assert.Equal(t, 1, seenID)
}
