package performance

import (
	"strconv"
	"time"
)

type Appraisal struct {
	ID         string
	EmployeeID string
	ReviewerID string // user who recorded the appraisal
	Goals      string
	Rating     *int
	Comments   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RatingLabel renders the rating for notification text.
func (a Appraisal) RatingLabel() string {
	if a.Rating == nil {
		return "N/A"
	}
	return strconv.Itoa(*a.Rating)
}
