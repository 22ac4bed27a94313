package probe

import (
	"bytes"

	"github.com/tidwall/gjson"

	"petstore-verify/internal/domain/entity"
)

// DecodeErrorBody interprets a non-2xx response body.
//
// Structured bodies ({"error", "message", "path", "status"}) are read field by
// field. A JSON string or a plain-text body becomes the message. Path and status
// fall back to the request path and the HTTP status when the body omits them.
func DecodeErrorBody(body []byte, status int, path string) entity.ErrorBody {
	eb := entity.ErrorBody{Path: path, StatusCode: status}
	trimmed := bytes.TrimSpace(body)

	if gjson.ValidBytes(trimmed) {
		res := gjson.ParseBytes(trimmed)
		switch {
		case res.IsObject():
			eb.ErrorType = res.Get("error").String()
			eb.Message = res.Get("message").String()
			eb.Timestamp = res.Get("timestamp").String()
			if p := res.Get("path"); p.Exists() && p.String() != "" {
				eb.Path = p.String()
			}
			if s := res.Get("status"); s.Exists() && s.Int() > 0 {
				eb.StatusCode = int(s.Int())
			}
			return eb
		case res.Type == gjson.String:
			eb.Message = res.String()
			return eb
		}
	}

	eb.Message = string(trimmed)
	return eb
}
