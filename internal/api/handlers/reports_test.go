package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReporterIDStableAcrossConnections(t *testing.T) {
	a := httptest.NewRequest(http.MethodPost, "/api/v1/reports", nil)
	a.RemoteAddr = "198.51.100.4:51000"
	b := httptest.NewRequest(http.MethodPost, "/api/v1/reports", nil)
	b.RemoteAddr = "198.51.100.4:51001"

	if reporterID(a) != reporterID(b) {
		t.Errorf("reporterID differs by port: %q vs %q", reporterID(a), reporterID(b))
	}
	if got := reporterID(a); got != "ip:198.51.100.4" {
		t.Errorf("reporterID = %q", got)
	}
}
