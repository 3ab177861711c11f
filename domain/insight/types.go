package insight

import (
	"strings"

	"workgen/domain/chart"
)

// Export file names and content type. Both formats carry the same plain text.
const (
	TextFilename    = "analysis_report.txt"
	DocFilename     = "analysis_report.doc"
	ExportMediaType = "text/plain"
	lineSeparator   = "\n\n"
)

// ReportLine is one generated insight sentence
type ReportLine struct {
	Seq      int    `json:"seq" db:"seq"`
	ChartKey string `json:"chart_key" db:"chart_key"`
	Text     string `json:"text" db:"text"`
}

// Report is the append-only list of insights for a session
type Report struct {
	lines []ReportLine
}

// Append adds a line, assigning the next sequence number
func (r *Report) Append(chartKey, text string) ReportLine {
	line := ReportLine{Seq: len(r.lines) + 1, ChartKey: chartKey, Text: text}
	r.lines = append(r.lines, line)
	return line
}

// Next returns the line that Append would add, without adding it
func (r *Report) Next(chartKey, text string) ReportLine {
	return ReportLine{Seq: len(r.lines) + 1, ChartKey: chartKey, Text: text}
}

// Commit appends a line prepared with Next
func (r *Report) Commit(line ReportLine) {
	r.lines = append(r.lines, line)
}

// Lines returns a copy of the report lines
func (r *Report) Lines() []ReportLine {
	out := make([]ReportLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of lines
func (r *Report) Len() int {
	return len(r.lines)
}

// Text joins all insight sentences with a blank line between them
func (r *Report) Text() string {
	texts := make([]string, len(r.lines))
	for i, l := range r.lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, lineSeparator)
}

// Format is a report download format
type Format string

const (
	FormatText Format = "txt"
	FormatDoc  Format = "doc"
)

// ExportFile is a downloadable rendition of the report
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export renders the report for a download format
func (r *Report) Export(format Format) (ExportFile, bool) {
	var name string
	switch format {
	case FormatText:
		name = TextFilename
	case FormatDoc:
		name = DocFilename
	default:
		return ExportFile{}, false
	}
	return ExportFile{
		Filename:    name,
		ContentType: ExportMediaType,
		Body:        []byte(r.Text()),
	}, true
}

// DashboardEntry pairs a rendered chart with the insight generated for it
type DashboardEntry struct {
	Figure  *chart.Figure `json:"figure"`
	Insight ReportLine    `json:"insight"`
}
