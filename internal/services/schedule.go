package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"planpilot-backend/internal/models"
)

const (
	analysisModel       = "gpt-4o-mini"
	analysisTemperature = 0.2

	// maxScheduleRows caps upstream token usage; rows beyond it are dropped.
	maxScheduleRows = 120

	analysisFallback = "The analysis service returned no usable assessment for this schedule."

	analysisSystemPrompt = "You are a senior delivery manager reviewing a project schedule. " +
		"First give a short overall assessment of the plan, then list 8-12 risks as a markdown table " +
		"with columns: ID, Risk, Why it matters, Suggested mitigation, Likelihood, Impact."
)

// ScheduleService turns an uploaded CSV schedule into a bounded textual
// prompt and asks the completion service for a risk assessment.
type ScheduleService struct {
	completions *CompletionClient
}

func NewScheduleService(completions *CompletionClient) *ScheduleService {
	return &ScheduleService{completions: completions}
}

// Analyze parses the uploaded CSV bytes and returns the markdown assessment.
func (s *ScheduleService) Analyze(ctx context.Context, fileBytes []byte) (models.AnalysisResponse, error) {
	headers, rows, err := parseSchedule(fileBytes)
	if err != nil {
		return models.AnalysisResponse{}, err
	}

	rendered := renderSchedule(headers, rows)
	userPrompt := fmt.Sprintf("Here is the project schedule as CSV:\n\n%s\n\nAssess it and list the risks.", rendered)

	analysis, err := s.completions.Complete(ctx, analysisModel, analysisTemperature, []models.ChatMessage{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return models.AnalysisResponse{}, err
	}
	if strings.TrimSpace(analysis) == "" {
		analysis = analysisFallback
	}

	return models.AnalysisResponse{Analysis: analysis}, nil
}

// parseSchedule decodes the bytes as CSV with the first record as headers and
// truncates to the first maxScheduleRows data rows.
func parseSchedule(fileBytes []byte) ([]string, []models.ScheduleRow, error) {
	reader := csv.NewReader(strings.NewReader(string(fileBytes)))

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &ValidationError{Message: fmt.Sprintf("could not parse CSV: %v", err)}
	}
	if len(records) < 2 {
		return nil, nil, &ValidationError{Message: "CSV contains no data rows"}
	}

	headers := records[0]
	data := records[1:]
	if len(data) > maxScheduleRows {
		data = data[:maxScheduleRows]
	}

	rows := make([]models.ScheduleRow, 0, len(data))
	for _, record := range data {
		row := make(models.ScheduleRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

var cellNewlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitizeCell collapses newlines to single spaces and swaps commas for
// semicolons so rows re-encode as plain comma-delimited lines without
// quoting. Deliberately lossy; the upstream model only needs readable text.
func sanitizeCell(v string) string {
	v = cellNewlines.Replace(v)
	return strings.ReplaceAll(v, ",", ";")
}

// renderSchedule produces the header line followed by one line per retained
// row, columns in header order.
func renderSchedule(headers []string, rows []models.ScheduleRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = sanitizeCell(row[h])
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}
