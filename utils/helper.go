package utils

import (
	"encoding/json"
)

// UnwrapPhotoURI extracts the uri field from the photo payload the mobile
// clients upload as a JSON string, e.g. {"uri":"data:image/..."}. Anything
// that does not parse is returned unchanged so stale records still render.
func UnwrapPhotoURI(photo string) string {
	if photo == "" {
		return ""
	}

	var payload struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal([]byte(photo), &payload); err != nil {
		return photo
	}
	if payload.URI == "" {
		return photo
	}
	return payload.URI
}
