package model

// CandidateStage is where a candidate sits in the hiring pipeline.
type CandidateStage string

const (
	StageApplied   CandidateStage = "applied"
	StageScreen    CandidateStage = "screen"
	StageInterview CandidateStage = "interview"
	StageOffer     CandidateStage = "offer"
	StageHired     CandidateStage = "hired"
	StageRejected  CandidateStage = "rejected"
)

// Stages lists pipeline stages in order.
func Stages() []CandidateStage {
	return []CandidateStage{StageApplied, StageScreen, StageInterview, StageOffer, StageHired, StageRejected}
}

// Valid reports whether s is a known stage.
func (s CandidateStage) Valid() bool {
	for _, stage := range Stages() {
		if s == stage {
			return true
		}
	}
	return false
}

// AssessmentStatus tracks the take-home assessment for a candidate.
type AssessmentStatus string

const (
	AssessmentNone      AssessmentStatus = ""
	AssessmentAssigned  AssessmentStatus = "assigned"
	AssessmentCompleted AssessmentStatus = "completed"
)

// Candidate is an application to a job posting.
type Candidate struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	JobID           string           `json:"jobId"`
	Stage           CandidateStage   `json:"stage"`
	Assessment      AssessmentStatus `json:"assessment,omitempty"`
	AppliedAtMillis int64            `json:"appliedAt"`
}

// DashboardStatistics is the summary shown on the HR dashboard.
type DashboardStatistics struct {
	TotalJobs            int `json:"totalJobs"`
	ActiveJobs           int `json:"activeJobs"`
	TotalCandidates      int `json:"totalCandidates"`
	NewCandidates        int `json:"newCandidates"`
	TotalAssessments     int `json:"totalAssessments"`
	CompletedAssessments int `json:"completedAssessments"`
	InterviewsScheduled  int `json:"interviewsScheduled"`
	OffersPending        int `json:"offersPending"`
	HiredCandidates      int `json:"hiredCandidates"`
}
