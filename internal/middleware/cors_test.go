package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name           string
		origin         string
		userAgent      string
		expectCors     bool
		expectedOrigin string
		expectedStatus int
	}{
		{
			name:           "AllowedOriginWebFrontend",
			origin:         "http://localhost:3000",
			userAgent:      "Mozilla/5.0",
			expectCors:     true,
			expectedOrigin: "http://localhost:3000",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AllowedOriginDesktopFrontend",
			origin:         "http://localhost:1420",
			userAgent:      "Mozilla/5.0",
			expectCors:     true,
			expectedOrigin: "http://localhost:1420",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedOrigin",
			origin:         "https://www.notallowed.com",
			userAgent:      "Mozilla/5.0",
			expectCors:     false,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "NoOriginLocalClient",
			origin:         "",
			userAgent:      "Mozilla/5.0",
			expectCors:     true,
			expectedOrigin: "*",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AllowedUserAgentCurl",
			origin:         "https://www.notallowed.com",
			userAgent:      "curl/8.4.0",
			expectCors:     true,
			expectedOrigin: "https://www.notallowed.com",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AllowedUserAgentTestAgent",
			origin:         "https://www.notallowed.com",
			userAgent:      "test-agent",
			expectCors:     true,
			expectedOrigin: "https://www.notallowed.com",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest("GET", "/measurements", nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			req.Header.Set("User-Agent", tc.userAgent)

			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			handler := Cors()(nextHandler)

			handler.ServeHTTP(rr, req)

			if tc.expectCors {
				assert.Equal(t, tc.expectedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, tc.expectedStatus, rr.Code)
			} else {
				assert.Equal(t, tc.expectedStatus, rr.Code, "Unexpected status code")
			}
		})
	}
}
