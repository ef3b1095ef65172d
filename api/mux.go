//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/scoutforge/camp-ops-go/conf"
	"github.com/scoutforge/camp-ops-go/directory"
	"github.com/scoutforge/camp-ops-go/lib/authz"
	"github.com/scoutforge/camp-ops-go/lib/herr"
	"github.com/scoutforge/camp-ops-go/lib/rand"
	"github.com/scoutforge/camp-ops-go/store"
)

func AddToMux(
	mux *http.ServeMux,
	es *EventSourcerer,
	cfg *conf.CampOpsConfig,
	db *store.Store,
	userStore *directory.UserStore,
) *http.ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}

	jwter := authz.JWTer{SecretKey: cfg.Core.JWTSecret}

	std := func(action http.Handler) http.Handler {
		return Adapt(
			action,
			RecoverFromPanic(),
			RequireAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		)
	}

	mux.Handle("POST /camp-ops/api/auth",
		Adapt(
			PostAuth{
				userStore,
				cfg.Core.JWTSecret,
				cfg.Core.AccessTokenLifetime,
				cfg.Core.RefreshTokenLifetime,
			},
			RecoverFromPanic(),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
			// This endpoint does not require authentication, nor
			// does it even consider the request's Authorization header,
			// because the point of this is to make a new JWT.
		),
	)

	mux.Handle("GET /camp-ops/api/auth",
		Adapt(
			GetAuth{cfg.Core.Admins},
			RecoverFromPanic(),
			// This endpoint reports on authentication state, so it
			// must not itself require authentication
			OptionalAuthN(jwter),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("POST /camp-ops/api/auth/refresh",
		Adapt(
			RefreshAccessToken{
				userStore,
				cfg.Core.JWTSecret,
				cfg.Core.AccessTokenLifetime,
			},
			RecoverFromPanic(),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
			// Authentication here is by refresh token cookie, not by
			// Authorization header.
		),
	)

	mux.Handle("GET /camp-ops/api/camps", std(GetCamps{db}))
	mux.Handle("POST /camp-ops/api/camps", std(PostCamp{db, es, cfg.Core.Admins}))
	mux.Handle("GET /camp-ops/api/camps/{campName}", std(GetCamp{db}))
	mux.Handle("PUT /camp-ops/api/camps/{campName}", std(PutCamp{db, es, cfg.Core.Admins}))
	mux.Handle("DELETE /camp-ops/api/camps/{campName}", std(DeleteCamp{db, es, cfg.Core.Admins}))

	mux.Handle("POST /camp-ops/api/supervision", std(PostSupervision{db, es, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/camps/{campName}/campers", std(PostCampers{db, es, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/camps/{campName}/campers/import", std(ImportCampers{db, es, cfg.Core.Admins}))

	mux.Handle("POST /camp-ops/api/camps/{campName}/activities", std(PostActivity{db, es, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/camps/{campName}/daily_records", std(PostDailyRecord{db, es, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/camps/{campName}/food", std(PostFoodTopUp{db, es, cfg.Core.Admins}))
	mux.Handle("PUT /camp-ops/api/camps/{campName}/food", std(PutFoodStock{db, es, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/camps/{campName}/pay_rate", std(PostPayRate{db, es, cfg.Core.Admins}))
	mux.Handle("GET /camp-ops/api/camps/{campName}/food_requirement", std(GetFoodRequirement{db, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/camps/{campName}/food_requirement", std(PostFoodRequirement{db, cfg.Core.Admins}))

	mux.Handle("GET /camp-ops/api/camps/{campName}/shortage", std(GetShortage{db, es, cfg.Core.Admins}))
	mux.Handle("GET /camp-ops/api/camps/{campName}/earnings", std(GetEarnings{db, cfg.Core.Admins}))
	mux.Handle("GET /camp-ops/api/camps/{campName}/engagement", std(GetEngagement{db, cfg.Core.Admins}))
	mux.Handle("GET /camp-ops/api/dashboard", std(GetDashboard{db, cfg.Core.Admins}))
	mux.Handle("GET /camp-ops/api/notifications", std(GetNotifications{db, cfg.Core.Admins}))

	mux.Handle("GET /camp-ops/api/personnel", std(GetPersonnel{userStore, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/personnel", std(PostPersonnel{userStore, cfg.Core.Admins}))
	mux.Handle("DELETE /camp-ops/api/personnel/{username}", std(DeletePersonnel{userStore, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/personnel/{username}/password", std(PostPassword{userStore, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/personnel/{username}/disabled", std(PostDisabled{userStore, cfg.Core.Admins}))

	mux.Handle("GET /camp-ops/api/messages", std(GetMessages{db, cfg.Core.Admins}))
	mux.Handle("POST /camp-ops/api/messages", std(PostMessage{db, userStore, cfg.Core.Admins}))
	mux.Handle("GET /camp-ops/api/messages/partners", std(GetMessagePartners{db, cfg.Core.Admins}))

	mux.Handle("GET /camp-ops/api/eventsource",
		Adapt(
			es.Server.Handler(EventSourceChannel),
			RecoverFromPanic(),
			LogRequest(),
			LimitRequestBytes(cfg.Core.MaxRequestBytes),
		),
	)

	mux.Handle("GET /camp-ops/api/status", std(GetStatus{db}))

	mux.HandleFunc("GET /",
		func(w http.ResponseWriter, req *http.Request) {
			herr.WriteOKResponse(w, "camp-ops")
		},
	)

	mux.HandleFunc("GET /camp-ops/api/ping",
		func(w http.ResponseWriter, req *http.Request) {
			herr.WriteOKResponse(w, "ack")
		},
	)

	mux.HandleFunc("GET /camp-ops/api/debug/buildinfo",
		func(w http.ResponseWriter, req *http.Request) {
			bi := buildInfo()
			herr.WriteOKResponse(w, bi.String())
		},
	)

	return mux
}

var buildInfo = sync.OnceValue[debug.BuildInfo](func() debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if ok {
		return *bi
	}
	// The conditions for this to happen aren't really possible, but returning an
	// empty struct instead is a good alternative. These values are just used for
	// informational purposes in the server anyway.
	slog.Info("Build info was unavailable, so an empty placeholder will be used instead")
	return debug.BuildInfo{}
})

type Adapter func(http.Handler) http.Handler

// responseWriter is a wrapper around http.ResponseWriter that lets us
// capture details about the response.
type responseWriter struct {
	http.ResponseWriter
	http.Flusher
	code int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.code = code
	rw.ResponseWriter.WriteHeader(code)
}

func LimitRequestBytes(maxRequestBytes int64) Adapter {
	return func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, maxRequestBytes)
	}
}

func LogRequest() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writ := &responseWriter{w, w.(http.Flusher), http.StatusOK}

			next.ServeHTTP(writ, r)

			username := "(unauthenticated)"
			jwtCtx, _ := r.Context().Value(JWTContextKey).(JWTContext)
			if jwtCtx.Claims != nil {
				username = jwtCtx.Claims.Username
			}

			durationMS := float64(time.Since(start).Microseconds()) / 1000.0

			slog.Debug(fmt.Sprintf("Served request for: %v %v ", r.Method, r.URL.Path),
				"duration", fmt.Sprintf("%.3fms", durationMS),
				"method", r.Method,
				"user", username,
				"code", writ.code,
				"request_id", rand.NonCryptoText(),
			)
		})
	}
}

func RecoverFromPanic() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					slog.Error("Recovered from panic", "err", err)
					debug.PrintStack()
					http.Error(w, "The server malfunctioned", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type ContextKey string

const JWTContextKey ContextKey = "JWTContext"

type JWTContext struct {
	Claims *authz.CampClaims
	Error  error
}

func OptionalAuthN(j authz.JWTer) Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			claims, err := j.AuthenticateJWT(strings.TrimPrefix(header, "Bearer "))
			ctx := context.WithValue(r.Context(), JWTContextKey, JWTContext{
				Claims: claims,
				Error:  err,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuthN(j authz.JWTer) Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			claims, err := j.AuthenticateJWT(strings.TrimPrefix(header, "Bearer "))
			if err != nil || claims == nil {
				herr.Unauthorized("Invalid Authorization token", err).
					SetExpectedError().WriteResponse(w)
				return
			}
			jwtCtx := context.WithValue(r.Context(), JWTContextKey, JWTContext{
				Claims: claims,
				Error:  err,
			})
			next.ServeHTTP(w, r.WithContext(jwtCtx))
		})
	}
}

func Adapt(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := range adapters {
		adapter := adapters[len(adapters)-1-i] // range in reverse
		handler = adapter(handler)
	}
	return handler
}
