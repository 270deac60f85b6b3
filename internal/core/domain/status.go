package domain

// StatusName is a workflow state label as stored in the statuses table.
type StatusName string

const (
	StatusPending            StatusName = "Pending"
	StatusInProcess          StatusName = "In-Process"
	StatusOnHold             StatusName = "On Hold"
	StatusApproved           StatusName = "Approved"
	StatusAwaitingCompletion StatusName = "Awaiting-Completion"
	StatusCompleted          StatusName = "Completed"
)

// Status is one row of the status vocabulary.
type Status struct {
	StatusID int        `json:"statusID"`
	Name     StatusName `json:"name"`
}

// RequiredStatuses lists the vocabulary rows every deployment must seed.
var RequiredStatuses = []StatusName{
	StatusPending,
	StatusInProcess,
	StatusOnHold,
	StatusApproved,
	StatusAwaitingCompletion,
	StatusCompleted,
}
