package server

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const requestBody contextKey = "body"
const jrpcMethod contextKey = "method"

// maxBodyBytes bounds a JSON-RPC request. Every method takes at most one
// encoded point.
const maxBodyBytes = 1 << 16

type jRPCRequest struct {
	Method string `json:"method"`
}

func setContextValue(r *http.Request, key contextKey, val interface{}) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, val))
}

func parseBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the body is read again further down the chain
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			log.WithError(err).Error("could not read request body")
			http.Error(w, "could not read request body", http.StatusBadRequest)
			return
		}
		r = setContextValue(r, requestBody, body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func augmentRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var j jRPCRequest
		body, ok := r.Context().Value(requestBody).([]byte)
		if !ok {
			log.Error("request body not set on context")
			next.ServeHTTP(w, r)
			return
		}
		err := json.Unmarshal(body, &j)
		if err != nil {
			// batch requests and garbage both end up here; the repository reports them
			log.WithError(err).Debug("could not read JRPC method from body")
			next.ServeHTTP(w, r)
			return
		}
		r = setContextValue(r, jrpcMethod, j.Method)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware never logs the body, which may carry key material.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := log.Fields{
			"RemoteAddr": r.RemoteAddr,
			"RequestURI": r.RequestURI,
		}
		if method, ok := r.Context().Value(jrpcMethod).(string); ok && method != "" {
			fields["method"] = method
		}
		log.WithFields(fields).Info("JRPC Method Requested")
		next.ServeHTTP(w, r)
	})
}
