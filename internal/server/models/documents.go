package models

import "reflect"

// AuthDocument is the top-level shape of the shared auth store file.
type AuthDocument struct {
	Users    []User    `json:"users"`
	Sessions []Session `json:"sessions"`
}

// Normalize initializes collections missing from an older on-disk document.
func (d *AuthDocument) Normalize() {
	initNilSlices(d)
}

// DataDocument is the top-level shape of a tagged business-data store file.
// One collection per entity type; all collections are present in the file
// even when empty.
type DataDocument struct {
	Organizations        []Organization        `json:"organizations"`
	Departments          []Department          `json:"departments"`
	Staff                []Staff               `json:"staff"`
	Statuses             []Status              `json:"statuses"`
	Priorities           []Priority            `json:"priorities"`
	Complexities         []Complexity          `json:"complexities"`
	Projects             []Project             `json:"projects"`
	Tasks                []Task                `json:"tasks"`
	TaskAssignees        []TaskAssignee        `json:"taskAssignees"`
	TaskPredecessors     []TaskPredecessor     `json:"taskPredecessors"`
	TaskProgress         []TaskProgress        `json:"taskProgress"`
	TaskEvaluations      []TaskEvaluation      `json:"taskEvaluations"`
	TaskStatusReports    []TaskStatusReport    `json:"taskStatusReports"`
	ProjectStatusReports []ProjectStatusReport `json:"projectStatusReports"`
	Teams                []Team                `json:"teams"`
	TeamMembers          []TeamMember          `json:"teamMembers"`
}

// Normalize initializes collections missing from an older on-disk document,
// so loading a file written before a collection existed never fails.
func (d *DataDocument) Normalize() {
	initNilSlices(d)
}

// initNilSlices walks the struct pointed to by doc and replaces every nil
// slice field with an empty one. This is the single place where the
// "required collections" rule lives; adding a collection to a document type
// is enough to have it healed on load.
func initNilSlices(doc any) {
	v := reflect.ValueOf(doc).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Slice && f.IsNil() {
			f.Set(reflect.MakeSlice(f.Type(), 0, 0))
		}
	}
}
