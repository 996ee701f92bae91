package designation

import "time"

type Designation struct {
	ID             string
	Name           string
	Classification *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join
	EmployeeCount int
}
