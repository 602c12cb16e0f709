package binder

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DatastarRequestHeader is set by the datastar client on every backend action.
	DatastarRequestHeader = "Datastar-Request"

	// DatastarQueryParam carries the signals of GET actions.
	DatastarQueryParam = "datastar"
)

// Signals binds the datastar signals sent with a backend action.
//
// Supported struct tags:
//   - `signals:"name"` - binds signal "name" as a string
//   - `signals:"*"`    - binds every top-level signal into a map[string]string
//
// Signal values are rendered as strings: booleans as "true"/"false", numbers
// in their shortest form, null as "". Nested objects and arrays are skipped.
// Requests that are not datastar actions are not applicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !IsDatastarRequest(r) {
			return ErrBinderNotApplicable
		}

		raw := make(map[string]any)
		if err := datastar.ReadSignals(r, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}

		values := make(map[string][]string, len(raw))
		for name, value := range raw {
			if s, ok := signalString(value); ok {
				values[name] = []string{s}
			}
		}

		return bindToStruct(v, "signals", values, ErrInvalidSignals)
	}
}

// IsDatastarRequest reports whether r is a datastar backend action.
func IsDatastarRequest(r *http.Request) bool {
	return r.Header.Get(DatastarRequestHeader) == "true" || r.URL.Query().Has(DatastarQueryParam)
}

func signalString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}
