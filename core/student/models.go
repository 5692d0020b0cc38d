package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
	"github.com/trezcool/masomo-admin/core/view"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	Statuses   = []string{StatusActive, StatusInactive}
	BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
)

type ParentInfo struct {
	FatherName  string `json:"father_name" yaml:"father_name" validate:"required"`
	FatherPhone string `json:"father_phone" yaml:"father_phone" validate:"required"`
	MotherName  string `json:"mother_name" yaml:"mother_name" validate:"required"`
	MotherPhone string `json:"mother_phone" yaml:"mother_phone" validate:"required"`
}

type Student struct {
	ID          string     `json:"id" yaml:"id"`
	FirstName   string     `json:"first_name" yaml:"first_name" validate:"required,notblank"`
	LastName    string     `json:"last_name" yaml:"last_name" validate:"required,notblank"`
	DateOfBirth string     `json:"date_of_birth" yaml:"date_of_birth" validate:"required,datetime=2006-01-02"`
	BloodType   string     `json:"blood_type" yaml:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies   string     `json:"allergies" yaml:"allergies"`
	Email       string     `json:"email" yaml:"email" validate:"omitempty,email"`
	Photo       string     `json:"photo" yaml:"photo" validate:"omitempty,url"`
	ClassID     string     `json:"class_id" yaml:"class_id" validate:"required"`
	ParentInfo  ParentInfo `json:"parent_info" yaml:"parent_info"`
	Status      string     `json:"status" yaml:"status" validate:"required,oneof=active inactive"`
}

func (s Student) EntityID() string { return s.ID }

func (s Student) WithID(id string) Student {
	s.ID = id
	return s
}

// Clone returns a copy of s; Student holds no reference types.
func (s Student) Clone() Student { return s }

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func (s *Student) clean() {
	s.FirstName = core.CleanString(s.FirstName)
	s.LastName = core.CleanString(s.LastName)
	s.Email = core.CleanString(s.Email, true /* lower */)
	s.ClassID = core.CleanString(s.ClassID)
	if s.Status == "" {
		s.Status = StatusActive
	}
}

// Validate cleans s and checks the required fields of the registration & edit forms.
func (s *Student) Validate(validate *validator.Validate) error {
	s.clean()
	return validate.Struct(s)
}

// NewDescriptor returns the view descriptor of the students directory.
// classIDs lists the options of the class filter.
func NewDescriptor(classIDs func() []string) view.Descriptor[Student] {
	return view.Descriptor[Student]{
		Name:  "students",
		Label: "Student",
		Spec: collection.Spec[Student]{
			Search: func(s Student) []string { return []string{s.FullName()} },
			Dimensions: []collection.Dimension[Student]{
				{Name: "status", Options: Statuses, Value: func(s Student) string { return s.Status }},
				{Name: "class", OptionsFunc: classIDs, Value: func(s Student) string { return s.ClassID }},
			},
		},
	}
}

// InClass returns the students of students attending classID.
func InClass(students []Student, classID string) []Student {
	return collection.Filter(students, collection.Spec[Student]{
		Dimensions: []collection.Dimension[Student]{
			{Name: "class", Value: func(s Student) string { return s.ClassID }},
		},
	}, collection.Query{Filters: map[string]string{"class": classID}})
}
