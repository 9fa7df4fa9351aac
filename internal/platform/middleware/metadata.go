package middleware

import (
	"net"
	"net/http"

	"github.com/mssola/useragent"

	"taskproof/pkg/requestcontext"
)

// Metadata records client IP and a parsed User-Agent summary in the request
// context. Audit events pick these up.
func Metadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err == nil {
				ip = host
			} else {
				ip = r.RemoteAddr
			}
		}
		ctx = requestcontext.WithClientIP(ctx, ip)

		if rawUA := r.Header.Get("User-Agent"); rawUA != "" {
			ctx = requestcontext.WithUserAgent(ctx, rawUA)
			ua := useragent.New(rawUA)
			name, version := ua.Browser()
			ctx = requestcontext.WithClientInfo(ctx, name+"/"+version+" ("+ua.OS()+")")
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
