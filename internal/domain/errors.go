package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidProjectID   = errors.New("invalid project id")
	ErrInvalidProjectName = errors.New("invalid project name")
	ErrInvalidFeatureID   = errors.New("invalid feature id")
	ErrInvalidGradeValue  = errors.New("invalid grade value")
	ErrScoreOutOfRange    = errors.New("score exceeds max score")

	// Lookup errors
	ErrProjectNotFound    = errors.New("project not found")
	ErrFeatureNotFound    = errors.New("feature not found")
	ErrEvaluationNotFound = errors.New("evaluation item not found")
	ErrRepoNotLinked      = errors.New("project has no linked github repository")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
	ErrRateLimited         = errors.New("upstream rate limit exceeded")

	// Sync errors
	ErrSyncInProgress = errors.New("sync already in progress for this project")
	ErrStoreWrite     = errors.New("evaluation store write failed")
)

// HTTPError для ответов API
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrInvalidProjectID:    {Code: "INVALID_PROJECT_ID", Message: "project id must not be empty"},
	ErrInvalidProjectName:  {Code: "INVALID_PROJECT_NAME", Message: "project name must not be empty"},
	ErrInvalidFeatureID:    {Code: "INVALID_FEATURE_ID", Message: "feature id must not be empty"},
	ErrProjectNotFound:     {Code: "NOT_FOUND", Message: "project not found"},
	ErrFeatureNotFound:     {Code: "NOT_FOUND", Message: "feature not found"},
	ErrEvaluationNotFound:  {Code: "NOT_FOUND", Message: "evaluation item not found"},
	ErrRepoNotLinked:       {Code: "REPO_NOT_LINKED", Message: "project has no linked GitHub repository"},
	ErrSyncInProgress:      {Code: "SYNC_IN_PROGRESS", Message: "another sync is running for this project"},
	ErrStoreWrite:          {Code: "STORE_WRITE_FAILED", Message: "failed to persist evaluation items"},
	ErrRateLimited:         {Code: "RATE_LIMITED", Message: "upstream rate limit exceeded, retry later"},
	ErrUpstreamUnavailable: {Code: "UPSTREAM_UNAVAILABLE", Message: "upstream provider unavailable"},
	ErrScoreOutOfRange:     {Code: "SCORE_OUT_OF_RANGE", Message: "score must not exceed max_score"},
	ErrInvalidGradeValue:   {Code: "INVALID_GRADE", Message: "complexity or quality value is not allowed"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
