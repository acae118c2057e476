package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScheduleErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, _, err := parseSchedule(nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Contains(t, vErr.Message, "no data rows")
	})

	t.Run("header only", func(t *testing.T) {
		_, _, err := parseSchedule([]byte("Task,Start,End\n"))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Contains(t, vErr.Message, "no data rows")
	})

	t.Run("malformed csv", func(t *testing.T) {
		_, _, err := parseSchedule([]byte("Task,Start\n\"unterminated,2026-01-01\n"))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Contains(t, vErr.Message, "parse")
	})
}

func TestParseScheduleTruncatesTo120Rows(t *testing.T) {
	var b strings.Builder
	b.WriteString("Task,Owner\n")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "task-%d,owner-%d\n", i, i)
	}

	headers, rows, err := parseSchedule([]byte(b.String()))
	require.NoError(t, err)
	require.Equal(t, []string{"Task", "Owner"}, headers)
	require.Len(t, rows, maxScheduleRows)
	require.Equal(t, "task-0", rows[0]["Task"])
	require.Equal(t, "task-119", rows[len(rows)-1]["Task"])

	rendered := renderSchedule(headers, rows)
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, maxScheduleRows+1, "expected one header line plus 120 data lines")
	require.Equal(t, "Task,Owner", lines[0])
}

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain value", "Design review", "Design review"},
		{"comma becomes semicolon", "design, build", "design; build"},
		{"newline collapses to space", "line one\nline two", "line one line two"},
		{"crlf collapses to single space", "line one\r\nline two", "line one line two"},
		{"comma and newline together", "blocked, waiting\non vendor", "blocked; waiting on vendor"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sanitizeCell(tc.in))
		})
	}
}

func TestRenderScheduleKeepsColumnAlignment(t *testing.T) {
	// A quoted cell with a comma and an embedded newline must still render
	// as a single line with the same number of columns.
	csvData := "Task,Notes,Owner\n\"Migrate DB\",\"risky, needs\ndowntime window\",dana\n"

	headers, rows, err := parseSchedule([]byte(csvData))
	require.NoError(t, err)

	rendered := renderSchedule(headers, rows)
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Migrate DB,risky; needs downtime window,dana", lines[1])
	require.Len(t, strings.Split(lines[1], ","), len(headers))
}

func TestAnalyzeSubmitsRenderedSchedule(t *testing.T) {
	var received completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "## Assessment\n\n| ID | Risk |\n"}},
			},
		})
	}))
	defer srv.Close()

	svc := NewScheduleService(NewCompletionClient("test-key", WithCompletionBaseURL(srv.URL)))

	resp, err := svc.Analyze(context.Background(), []byte("Task,Owner\nShip it,dana\n"))
	require.NoError(t, err)
	require.Contains(t, resp.Analysis, "Assessment")

	require.Equal(t, analysisModel, received.Model)
	require.Equal(t, analysisTemperature, received.Temperature)
	require.Len(t, received.Messages, 2)
	require.Equal(t, "system", received.Messages[0].Role)
	require.Contains(t, received.Messages[0].Content, "8-12 risks")
	require.Equal(t, "user", received.Messages[1].Role)
	require.Contains(t, received.Messages[1].Content, "Task,Owner\nShip it,dana")
}

func TestAnalyzeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	svc := NewScheduleService(NewCompletionClient("test-key", WithCompletionBaseURL(srv.URL)))

	_, err := svc.Analyze(context.Background(), []byte("Task\na\n"))
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
}

func TestAnalyzeFallbackWhenNoUsableText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	svc := NewScheduleService(NewCompletionClient("test-key", WithCompletionBaseURL(srv.URL)))

	resp, err := svc.Analyze(context.Background(), []byte("Task\na\n"))
	require.NoError(t, err)
	require.Equal(t, analysisFallback, resp.Analysis)
}
