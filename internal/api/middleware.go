package api

import (
	"commute-learning-service/internal/platform/obs"
	"log"
	"net/http"
	"strconv"
	"time"
)

// statusWriter captures the final HTTP status code and number of bytes written.
// This helps distinguish "handler returned 200" from "client received a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// loggingMiddleware logs end-to-end request duration and response size and
// records the latency histogram. It must run after chi's RequestID middleware.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{
			ResponseWriter: w,
			status:         0,
		}

		defer func() {
			// Recoverer sits inside this middleware, so a zero status means nothing was written.
			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			elapsed := time.Since(start)

			obs.HTTPRequestDuration.
				WithLabelValues(r.Method, strconv.Itoa(sw.status)).
				Observe(elapsed.Seconds())

			log.Printf(
				"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
				obs.RequestID(r.Context()), r.Method, r.URL.RequestURI(), sw.status, sw.bytes, elapsed.Milliseconds(),
			)
		}()

		next.ServeHTTP(sw, r)
	})
}
