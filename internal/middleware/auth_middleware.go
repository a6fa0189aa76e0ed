package middleware

import (
	"net/http"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/auth"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
)

// JWTAuth is a middleware that requires a valid admin token
func JWTAuth(jwtService auth.JWTValidator) func(http.Handler) http.Handler {
	return auth.RequireAuth(auth.NewJWTAuthProvider(jwtService))
}

// SecurityHeaders adds security-related HTTP headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			w.Header().Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			w.Header().Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)

			next.ServeHTTP(w, r)
		})
	}
}
