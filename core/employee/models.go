package employee

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
	"github.com/trezcool/masomo-admin/core/view"
)

// Statuses
const (
	StatusActive     = "active"
	StatusOnLeave    = "on-leave"
	StatusTerminated = "terminated"
)

// Employment types
const (
	FullTime = "full-time"
	PartTime = "part-time"
	Contract = "contract"
)

var (
	Statuses        = []string{StatusActive, StatusOnLeave, StatusTerminated}
	EmploymentTypes = []string{FullTime, PartTime, Contract}
	Departments     = []string{"Academic", "Administration", "Student Services", "Maintenance", "Security"}
)

type Employee struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name" validate:"required,notblank"`
	Role           string `json:"role" yaml:"role" validate:"required,notblank"`
	Department     string `json:"department" yaml:"department" validate:"required,oneof=Academic Administration 'Student Services' Maintenance Security"`
	Email          string `json:"email" yaml:"email" validate:"required,email"`
	Phone          string `json:"phone" yaml:"phone" validate:"required"`
	Address        string `json:"address" yaml:"address"`
	Photo          string `json:"photo" yaml:"photo" validate:"omitempty,url"`
	JoinDate       string `json:"join_date" yaml:"join_date" validate:"required,datetime=2006-01-02"`
	Status         string `json:"status" yaml:"status" validate:"required,oneof=active on-leave terminated"`
	EmploymentType string `json:"employment_type" yaml:"employment_type" validate:"required,oneof=full-time part-time contract"`
}

func (e Employee) EntityID() string { return e.ID }

func (e Employee) WithID(id string) Employee {
	e.ID = id
	return e
}

func (e Employee) Clone() Employee { return e }

func (e *Employee) clean() {
	e.Name = core.CleanString(e.Name)
	e.Role = core.CleanString(e.Role)
	e.Email = core.CleanString(e.Email, true /* lower */)
	e.Phone = core.CleanString(e.Phone)
	e.Address = core.CleanString(e.Address)
	if e.Department == "" {
		e.Department = Departments[0]
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.EmploymentType == "" {
		e.EmploymentType = FullTime
	}
}

func (e *Employee) Validate(validate *validator.Validate) error {
	e.clean()
	return validate.Struct(e)
}

// Descriptor is the view descriptor of the employees screen.
// Employees are searched by name, role or email.
var Descriptor = view.Descriptor[Employee]{
	Name:  "employees",
	Label: "Employee",
	Spec: collection.Spec[Employee]{
		Search: func(e Employee) []string { return []string{e.Name, e.Role, e.Email} },
		Dimensions: []collection.Dimension[Employee]{
			{Name: "department", Options: Departments, Value: func(e Employee) string { return e.Department }},
			{Name: "employment_type", Options: EmploymentTypes, Value: func(e Employee) string { return e.EmploymentType }},
			{Name: "status", Options: Statuses, Value: func(e Employee) string { return e.Status }},
		},
	},
	Messages: view.Messages{
		Added:   "Employee added successfully",
		Updated: "Employee updated successfully",
		Deleted: "Employee deleted successfully",
	},
}
