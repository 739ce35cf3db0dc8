package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yesoreyeram/transect/pkg/config"
)

func TestHandleParse(t *testing.T) {
	cfg := DefaultConfig()
	opts := config.Testing()
	srv, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	tests := []struct {
		name           string
		request        parseRequest
		expectedStatus int
	}{
		{
			name: "single terminal to root",
			request: parseRequest{
				PassageID:  "p1",
				Paragraphs: [][]string{{"Hello"}},
				Actions: []actionDTO{
					{Kind: "SHIFT"},
					{Kind: "NODE", Tag: "Terminal"},
					{Kind: "REDUCE"},
					{Kind: "SHIFT"},
					{Kind: "RIGHT_EDGE", Tag: "H"},
					{Kind: "REDUCE"},
					{Kind: "FINISH"},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown action kind",
			request: parseRequest{
				PassageID:  "p2",
				Paragraphs: [][]string{{"Hello"}},
				Actions:    []actionDTO{{Kind: "FLY"}},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "action rejected by state machine",
			request: parseRequest{
				PassageID:  "p3",
				Paragraphs: [][]string{{"Hello"}},
				Actions:    []actionDTO{{Kind: "REDUCE"}},
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.request)
			if err != nil {
				t.Fatalf("failed to marshal request: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()
			srv.handleParse(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleParseMethodNotAllowed(t *testing.T) {
	cfg := DefaultConfig()
	opts := config.Testing()
	srv, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parse", nil)
	rr := httptest.NewRecorder()
	srv.handleParse(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}
