package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	rec := request(t, NewHandler().Health, http.MethodGet, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["app"] != "investorhub" {
		t.Fatalf("body = %v", body)
	}
	if body["version"] != Version {
		t.Fatalf("version = %v", body["version"])
	}
}
