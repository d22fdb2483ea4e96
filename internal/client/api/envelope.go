package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
)

// Detail is the backend's error block. It arrives either as
// {"error": "..."} or as a bare string.
type Detail struct {
	Error string `json:"error,omitempty"`
}

func (d *Detail) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &d.Error)
	case '{':
		var obj struct {
			Error string `json:"error"`
			Msg   string `json:"msg"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		d.Error = obj.Error
		if d.Error == "" {
			d.Error = obj.Msg
		}
		return nil
	default:
		// validation lists and other shapes keep their raw text
		d.Error = string(b)
		return nil
	}
}

// Envelope is the normalized response: {data, detail?, metadata?}.
type Envelope struct {
	Data     json.RawMessage          `json:"data,omitempty"`
	Detail   *Detail                  `json:"detail,omitempty"`
	Metadata *models.ResponseMetadata `json:"metadata,omitempty"`
}

// Err returns the semantic error message carried by the envelope, if any.
func (e *Envelope) Err() string {
	if e == nil || e.Detail == nil {
		return ""
	}
	return strings.TrimSpace(e.Detail.Error)
}

// Decode unmarshals Data into v. An absent or null payload leaves v untouched.
func (e *Envelope) Decode(v any) error {
	if e == nil || len(e.Data) == 0 || bytes.Equal(bytes.TrimSpace(e.Data), []byte("null")) {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

var envelopeKeys = []string{"data", "detail", "metadata"}

// decodeEnvelope accepts the documented envelope or, for endpoints that
// answer with a bare document, wraps the whole body as Data.
func decodeEnvelope(body []byte) (*Envelope, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &Envelope{}, nil
	}
	if body[0] != '{' {
		if !json.Valid(body) {
			return nil, errors.New("response is not valid JSON")
		}
		return &Envelope{Data: json.RawMessage(body)}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	wrapped := false
	for _, k := range envelopeKeys {
		if _, ok := fields[k]; ok {
			wrapped = true
			break
		}
	}
	if !wrapped {
		return &Envelope{Data: json.RawMessage(body)}, nil
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// errorFromBody picks the message for a non-2xx response: detail.error, a
// string detail, message, the raw text, then the status text.
func errorFromBody(body []byte, statusText string) string {
	var obj struct {
		Detail  *Detail `json:"detail"`
		Message string  `json:"message"`
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &obj) == nil {
		if obj.Detail != nil && strings.TrimSpace(obj.Detail.Error) != "" {
			return obj.Detail.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	if len(trimmed) > 0 {
		return string(trimmed)
	}
	return statusText
}
