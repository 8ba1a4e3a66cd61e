// internal/decoder/decoder.go
//
// Strict JSON request-body decoding shared by all handlers.
// Rejects unknown fields, oversized bodies, trailing JSON values, and
// reports precise positions for syntax/type errors. On failure it has
// already written the 400 response; handlers just return.

package decoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies at 1MB.
const maxBodyBytes = 1 << 20

// DecodeJSONBody decodes r's body into dst with strict settings.
// A non-nil return means the error response was already sent.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("request body contains badly-formed JSON (at character %d)", syntaxError.Offset)
			http.Error(w, jsonError(msg), http.StatusBadRequest)
			return err

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("request body contains an incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
			if unmarshalTypeError.Field != "" {
				msg = fmt.Sprintf("request body contains an incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			http.Error(w, jsonError(msg), http.StatusBadRequest)
			return err

		case errors.Is(err, io.EOF):
			http.Error(w, jsonError("request body must not be empty"), http.StatusBadRequest)
			return err

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.TrimPrefix(err.Error(), "json: unknown field ")
			http.Error(w, jsonError("request body contains unknown field "+field), http.StatusBadRequest)
			return err

		// Destination is not a valid pointer: a programming error.
		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			http.Error(w, jsonError(http.StatusText(http.StatusBadRequest)), http.StatusBadRequest)
			return err
		}
	}

	// A second decode must hit EOF, otherwise the body held extra values.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		msg := "request body must only contain a single JSON object"
		http.Error(w, jsonError(msg), http.StatusBadRequest)
		return errors.New(msg)
	}
	return nil
}

func jsonError(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}
