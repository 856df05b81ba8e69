package model

import "strings"

// MIMETypePDF is the media type of every report artifact.
const MIMETypePDF = "application/pdf"

// DefaultReportName is the artifact file name used when the caller does not
// choose one.
const DefaultReportName = "result.pdf"

// ReportRequest is everything the report generator needs to render a result.
// RawText may be empty or arbitrarily long and may contain line breaks.
type ReportRequest struct {
	RawText        string `json:"raw_text"`
	ModelName      string `json:"model_name"`
	PredictedLabel string `json:"predicted_label"`
}

// Lines splits RawText into the lines drawn in the report body.
// Empty segments are kept so blank lines survive; a trailing carriage
// return is dropped from each segment so CRLF input renders like LF input.
// Empty text yields no lines at all.
func (r ReportRequest) Lines() []string {
	if r.RawText == "" {
		return nil
	}
	lines := strings.Split(r.RawText, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Artifact describes a generated report document.
type Artifact struct {
	// Name is the file name offered to the user, e.g. "result.pdf".
	Name string `json:"name"`

	// Path is where the document was written. Empty for streamed artifacts.
	Path string `json:"path,omitempty"`

	// MIMEType is always MIMETypePDF.
	MIMEType string `json:"mime_type"`

	// Pages is the number of pages in the document.
	Pages int `json:"pages"`

	// Size is the document size in bytes.
	Size int64 `json:"size"`
}
