package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/errors"
)

// machineMode is set by --json. Spinners, prompts and colored summaries
// stay off while it is on.
var machineMode bool

func MachineMode() bool {
	return machineMode
}

// JSONEnvelope is the top-level object of every --json output.
type JSONEnvelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *JSONError `json:"error,omitempty"`
}

type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// Codes reported in JSONError.Code.
const (
	ErrCodeConfigNotFound  = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid   = "CONFIG_INVALID"
	ErrCodeTemplateInvalid = "TEMPLATE_INVALID"
	ErrCodeTransport       = "TRANSPORT_FAILED"
	ErrCodeInput           = "INPUT_FAILED"
	ErrCodeUnknown         = "UNKNOWN"
)

var jsonCodes = map[string]string{
	errors.ErrConfig:    ErrCodeConfigInvalid,
	errors.ErrTemplate:  ErrCodeTemplateInvalid,
	errors.ErrTransport: ErrCodeTransport,
	errors.ErrInput:     ErrCodeInput,
}

func WriteJSONSuccess(w io.Writer, data any) error {
	return writeJSON(w, JSONEnvelope{Success: true, Data: data})
}

func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSON(w, JSONEnvelope{Error: ErrorToJSON(err)})
}

// writeJSON indents and leaves '<' and '&' alone, both common in queries.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// ErrorToJSON maps err to a JSONError. Errors that are not *errors.Error
// get ErrCodeUnknown.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		return &JSONError{Code: ErrCodeUnknown, Message: err.Error()}
	}

	je := &JSONError{Code: jsonCode(e), Message: e.Message, Suggestion: e.Suggestion}
	if e.Cause != nil {
		je.Details = map[string]string{"cause": e.Cause.Error()}
	}
	return je
}

func jsonCode(e *errors.Error) string {
	code, ok := jsonCodes[e.Code]
	if !ok {
		return ErrCodeUnknown
	}
	if code == ErrCodeConfigInvalid {
		msg := strings.ToLower(e.Message)
		if strings.Contains(msg, "not found") || strings.Contains(msg, "couldn't find") {
			return ErrCodeConfigNotFound
		}
	}
	return code
}
