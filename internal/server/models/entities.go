package models

import "time"

// Business entities stored per tag. The persistence core treats the
// containing document wholesale; referential rules between these records are
// enforced by the (out of scope) API layer.

type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Department struct {
	ID                 string `json:"id"`
	OrganizationID     string `json:"organizationId"`
	ParentDepartmentID string `json:"parentDepartmentId,omitempty"`
	Name               string `json:"name"`
}

type Staff struct {
	ID           string `json:"id"`
	DepartmentID string `json:"departmentId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email,omitempty"`
	SupervisorID string `json:"supervisorId,omitempty"`
}

// Reference data records share one shape.

type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Priority struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Complexity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	ManagerID      string     `json:"managerId,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}

type Task struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"projectId"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	StatusID     string     `json:"statusId,omitempty"`
	PriorityID   string     `json:"priorityId,omitempty"`
	ComplexityID string     `json:"complexityId,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

type TaskAssignee struct {
	ID      string `json:"id"`
	TaskID  string `json:"taskId"`
	StaffID string `json:"staffId"`
}

type TaskPredecessor struct {
	ID                string `json:"id"`
	TaskID            string `json:"taskId"`
	PredecessorTaskID string `json:"predecessorTaskId"`
}

type TaskProgress struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	ReportedAt time.Time `json:"reportedAt"`
	Percent    int       `json:"percent"`
}

type TaskEvaluation struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId"`
	EvaluatorID string `json:"evaluatorId"`
	Score       int    `json:"score"`
	Comment     string `json:"comment,omitempty"`
}

type TaskStatusReport struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	ReportedAt time.Time `json:"reportedAt"`
	Summary    string    `json:"summary"`
}

type ProjectStatusReport struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	ReportedAt time.Time `json:"reportedAt"`
	Summary    string    `json:"summary"`
}

type Team struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId,omitempty"`
	Name           string `json:"name"`
}

type TeamMember struct {
	ID      string `json:"id"`
	TeamID  string `json:"teamId"`
	StaffID string `json:"staffId"`
}
