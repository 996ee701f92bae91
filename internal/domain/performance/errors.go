package performance

import "errors"

var (
	ErrAppraisalNotFound = errors.New("appraisal not found")
	ErrAccessDenied      = errors.New("access denied")
)
