package models

// ScheduleRow maps a column header to the cell value of one CSV record.
// Rows live only for the duration of a request.
type ScheduleRow map[string]string

// AnalysisResponse carries the markdown assessment and risk table produced
// for an uploaded schedule.
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}
