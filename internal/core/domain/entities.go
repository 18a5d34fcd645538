package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMechanic Role = "mechanic"
)

// IsValid checks if the role is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMechanic
}

// JobStatus represents the status of a job (work order)
type JobStatus string

const (
	StatusActive     JobStatus = "active"
	StatusInProgress JobStatus = "in-progress"
	StatusRepaired   JobStatus = "repaired"
	StatusInvoice    JobStatus = "invoice"
	StatusArchived   JobStatus = "archived"
)

// AllJobStatuses lists every known job status
var AllJobStatuses = []JobStatus{
	StatusActive,
	StatusInProgress,
	StatusRepaired,
	StatusInvoice,
	StatusArchived,
}

// IsValid checks if the status is a known status
func (s JobStatus) IsValid() bool {
	for _, known := range AllJobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// mechanicTransitions is the set of status moves a mechanic may perform on
// their own assigned jobs. Mechanics only move work forward toward repaired;
// invoicing and archiving stay with the office.
var mechanicTransitions = map[JobStatus][]JobStatus{
	StatusActive:     {StatusInProgress, StatusRepaired},
	StatusInProgress: {StatusRepaired},
}

// CanTransition reports whether a user with the given role may move a job
// from one status to another. Admins may set any status to any other.
// Mechanics may only move jobs assigned to them, and only from
// active/in-progress toward repaired.
func CanTransition(role Role, from, to JobStatus, isAssignedMechanic bool) bool {
	if !to.IsValid() {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	if role == RoleMechanic {
		if !isAssignedMechanic {
			return false
		}
		for _, allowed := range mechanicTransitions[from] {
			if to == allowed {
				return true
			}
		}
	}
	return false
}

// MarginPercentage derives the job profitability percentage from its cost
// fields. total_cost is externally settable and not necessarily
// labor_cost+parts_cost, so the margin can swing negative or positive.
// Defined as 0 when totalCost is 0.
func MarginPercentage(laborCost, partsCost, totalCost float64) float64 {
	if totalCost == 0 {
		return 0
	}
	return ((laborCost + partsCost) - totalCost) / totalCost * 100
}
