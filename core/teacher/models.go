package teacher

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
	"github.com/trezcool/masomo-admin/core/view"
)

// Statuses
const (
	StatusActive   = "active"
	StatusOnLeave  = "on-leave"
	StatusInactive = "inactive"
)

var Statuses = []string{StatusActive, StatusOnLeave, StatusInactive}

type Address struct {
	Neighborhood string `json:"neighborhood" yaml:"neighborhood" validate:"required"`
	HouseNumber  string `json:"house_number" yaml:"house_number" validate:"required"`
	City         string `json:"city" yaml:"city" validate:"required"`
}

type Teacher struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name" validate:"required,notblank"`
	Telephone   string   `json:"telephone" yaml:"telephone" validate:"required"`
	DateOfBirth string   `json:"date_of_birth" yaml:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Photo       string   `json:"photo" yaml:"photo" validate:"omitempty,url"`
	Address     Address  `json:"address" yaml:"address"`
	Subjects    []string `json:"subjects" yaml:"subjects" validate:"dive,notblank"`
	Status      string   `json:"status" yaml:"status" validate:"required,oneof=active on-leave inactive"`
}

func (t Teacher) EntityID() string { return t.ID }

func (t Teacher) WithID(id string) Teacher {
	c := t.Clone()
	c.ID = id
	return c
}

func (t Teacher) Clone() Teacher {
	c := t
	if t.Subjects != nil {
		c.Subjects = append(make([]string, 0, len(t.Subjects)), t.Subjects...)
	}
	return c
}

// SetSubjects replaces the subjects with the cleaned, non-blank items of subjects.
func (t *Teacher) SetSubjects(subjects []string) {
	t.Subjects = make([]string, 0, len(subjects))
	for _, s := range subjects {
		if s = core.CleanString(s); s != "" {
			t.Subjects = append(t.Subjects, s)
		}
	}
}

func (t *Teacher) clean() {
	t.Name = core.CleanString(t.Name)
	t.Telephone = core.CleanString(t.Telephone)
	t.SetSubjects(t.Subjects)
	if t.Status == "" {
		t.Status = StatusActive
	}
}

// Validate cleans t and checks the required fields of the registration & edit forms.
func (t *Teacher) Validate(validate *validator.Validate) error {
	t.clean()
	return validate.Struct(t)
}

// Descriptor is the view descriptor of the teachers directory.
// Teachers are searched by name or subjects.
var Descriptor = view.Descriptor[Teacher]{
	Name:  "teachers",
	Label: "Teacher",
	Spec: collection.Spec[Teacher]{
		Search: func(t Teacher) []string { return []string{t.Name, strings.Join(t.Subjects, " ")} },
		Dimensions: []collection.Dimension[Teacher]{
			{Name: "status", Options: Statuses, Value: func(t Teacher) string { return t.Status }},
		},
	},
}
