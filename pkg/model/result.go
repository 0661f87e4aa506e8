// pkg/model/result.go
package model

// Summary carries the record counts of a completed run.
type Summary struct {
	TotalRaw      int `json:"totalRaw"`
	TotalCleaned  int `json:"totalCleaned"`
	TotalExcluded int `json:"totalExcluded"`
}

// Result is the payload returned to the caller. On success Status is "OK"
// and Summary plus ResultLocationURL are populated; on failure Status is
// "ERROR" and only Message is set - no partial summary.
type Result struct {
	Status            string   `json:"status"`
	Summary           *Summary `json:"summary,omitempty"`
	ResultLocationURL string   `json:"resultLocationURL,omitempty"`
	Message           string   `json:"message,omitempty"`
}

// OKResult builds a success payload.
func OKResult(summary Summary, location string) Result {
	return Result{
		Status:            "OK",
		Summary:           &summary,
		ResultLocationURL: location,
	}
}

// ErrorResult builds a failure payload.
func ErrorResult(message string) Result {
	return Result{
		Status:  "ERROR",
		Message: message,
	}
}
