package workflow

import (
	"encoding/json"
	"fmt"
)

// OutcomeKind tags the result of one recognition attempt
type OutcomeKind int

const (
	// OutcomeMatched means exactly one appraiser matched the captured face
	OutcomeMatched OutcomeKind = iota
	// OutcomeNoMatch means no appraiser matched. Recognition being offline
	// also lands here so the workflow stays unblocked.
	OutcomeNoMatch
	// OutcomeRejected means the input was unusable (no face or multiple
	// faces); the user must retry the capture
	OutcomeRejected
	// OutcomeFailed means a transport or server error; retryable
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMatched:
		return "matched"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// AppraiserProfile is the identification workflow's view of a matched
// appraiser. It is only ever produced by a recognition call.
type AppraiserProfile struct {
	AppraiserID         string  `json:"appraiser_id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	ImageData           string  `json:"image_data"`
	AppraisalsCompleted int     `json:"appraisals_completed"`
	Bank                string  `json:"bank"`
	Branch              string  `json:"branch"`
	Similarity          float64 `json:"similarity"`
}

// Outcome is the tagged result of a recognition attempt
type Outcome struct {
	Kind    OutcomeKind
	Profile *AppraiserProfile // set only for OutcomeMatched
	Reason  string            // user-facing message for OutcomeRejected
	Err     error             // set only for OutcomeFailed
}

// Input conditions the backend reports that the user can correct by
// retrying the capture
var rejectionErrors = map[string]bool{
	"no_face_detected": true,
	"multiple_faces":   true,
}

// mapRecognitionResponse maps every backend response shape to exactly one
// outcome. The mapping is total: matched, no-match, input rejection, service
// offline, generic error and transport failure each have a defined home.
func mapRecognitionResponse(statusCode int, body []byte) Outcome {
	var resp struct {
		Recognized bool              `json:"recognized"`
		Appraiser  *AppraiserProfile `json:"appraiser"`
		Error      string            `json:"error"`
		Message    string            `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("malformed recognition response: %w", err)}
	}

	if resp.Error != "" {
		if rejectionErrors[resp.Error] {
			reason := resp.Message
			if reason == "" {
				reason = resp.Error
			}
			return Outcome{Kind: OutcomeRejected, Reason: reason}
		}
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("recognition error: %s", resp.Error)}
	}

	if statusCode < 200 || statusCode > 299 {
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("recognition request failed with status %d", statusCode)}
	}

	if resp.Recognized && resp.Appraiser != nil {
		return Outcome{Kind: OutcomeMatched, Profile: resp.Appraiser}
	}

	// No match, including the recognition-service-offline signal: the
	// workflow degrades to the new-appraiser path rather than blocking.
	return Outcome{Kind: OutcomeNoMatch}
}
