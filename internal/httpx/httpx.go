// internal/httpx/httpx.go
//
// JSON request and response helpers shared by the API components.
//
// Context
// -------
// Every API response is JSON.  Failures use one shape, `{"error": "…"}`,
// so the admin client can surface a message without inspecting status
// codes.  Storage failures are always logged with the request logger; the
// raw error text reaches the client only when the operator opts in with
// `http.expose_errors`.
//
// Notes
// -----
//   - Decode rejects unknown trailing data but tolerates unknown fields so
//     older admin clients keep working.
//   - Oxford commas, two spaces after periods.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/pcgsite/internal/logger"
)

// MaxBodyBytes caps request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// ErrBadJSON wraps every Decode failure.
var ErrBadJSON = errors.New("invalid JSON body")

var validate = validator.New()

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes `{"error": msg}`.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Success writes `{"success": true}`.
func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Decode reads one JSON value from the body into dst.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.Join(ErrBadJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrBadJSON
	}
	return nil
}

// Validate runs `validate:"…"` struct tags and returns a short,
// client-safe message on failure.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, lowerFirst(fe.Field()))
		}
		return errors.New("missing or invalid: " + strings.Join(fields, ", "))
	}
	return err
}

// Internal logs err and writes a 500.  When expose is true the error text is
// returned to the client, otherwise a generic message.
func Internal(w http.ResponseWriter, r *http.Request, err error, expose bool) {
	logger.FromContext(r.Context()).Errorw("request failed",
		"method", r.Method, "path", r.URL.Path, "err", err)
	msg := "internal server error"
	if expose {
		msg = err.Error()
	}
	Error(w, http.StatusInternalServerError, msg)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
