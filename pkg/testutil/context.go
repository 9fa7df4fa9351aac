package testutil

import (
	"net/http"

	"taskproof/pkg/requestcontext"
)

// WithUserID stamps a user ID onto the request context, simulating what the
// auth middleware does for authenticated requests.
func WithUserID(req *http.Request, userID string) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}
