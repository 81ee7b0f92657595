package middleware

import (
	"net/http"

	"hrm/internal/domain/activity"
	"hrm/internal/transport/http/shared"
)

// Recorder is the subset of the activity recorder the middleware needs.
type Recorder interface {
	Record(e activity.Entry)
}

// Audit records successful mutating API calls. Recording is fire-and-forget
// so a slow audit store never delays the response.
func Audit(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status >= http.StatusBadRequest {
				return
			}
			user, ok := GetUser(r.Context())
			if !ok {
				return
			}
			rec.Record(activity.Entry{
				ActorID:   user.UserID,
				ActorName: user.Name,
				ActorRole: user.RoleName,
				Action:    r.Method + " " + r.URL.Path,
				Module:    activity.ModuleForPath(r.URL.Path),
				IP:        shared.ClientIP(r),
			})
		})
	}
}

// PageView records each page served behind a role gate. Unlike Audit it
// captures GETs: on the page tree the load itself is the user action.
// Redirects and errors are not views.
func PageView(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status >= http.StatusMultipleChoices {
				return
			}
			user, ok := GetUser(r.Context())
			if !ok {
				return
			}
			rec.Record(activity.Entry{
				ActorID:   user.UserID,
				ActorName: user.Name,
				ActorRole: user.RoleName,
				Action:    "view",
				Module:    activity.ModuleForPath(r.URL.Path),
				Detail:    r.URL.Path,
				IP:        shared.ClientIP(r),
			})
		})
	}
}
