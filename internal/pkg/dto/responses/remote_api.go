package responses

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// ApiEnvelope is the body shape returned by the remote records API.
type ApiEnvelope[T any] struct {
	ResponseObject T               `json:"responseObject"`
	Message        string          `json:"message,omitempty"`
	Error          json.RawMessage `json:"error,omitempty"`
}

// ErrorMessage returns the payload-level error, if the remote API set one.
// The field is either a string or an object carrying a message.
func (e *ApiEnvelope[T]) ErrorMessage() (string, bool) {
	raw := strings.TrimSpace(string(e.Error))
	if raw == "" || raw == "null" || raw == "false" || raw == `""` {
		return "", false
	}

	parsed := gjson.ParseBytes(e.Error)
	if parsed.Type == gjson.String {
		return parsed.String(), true
	}
	if message := parsed.Get("message").String(); parsed.IsObject() && message != "" {
		return message, true
	}

	return raw, true
}

// RemoteSleepEntry mirrors a sleep row as the remote API serialises it.
type RemoteSleepEntry struct {
	ID               string `json:"_id"`
	Resident         string `json:"resident"`
	DateTaken        string `json:"dateTaken"`
	MarkedFor        string `json:"markedFor"`
	MarkAs           string `json:"markAs"`
	ReasonFilledLate string `json:"reasonFilledLate"`
}

// RemoteResident mirrors a resident (patient) row of the remote API.
type RemoteResident struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Active    *bool  `json:"active,omitempty"`
}
