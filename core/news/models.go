package news

import (
	"github.com/go-playground/validator/v10"
	ut "github.com/go-playground/universal-translator"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/view"
)

// Statuses
const (
	StatusPublished = "published"
	StatusScheduled = "scheduled"
	StatusDraft     = "draft"
)

// Audiences
const (
	TargetAll     = "all"
	TargetClass   = "class"
	TargetStudent = "student"

	// AudienceEveryone filters on TargetAll, whose value is taken by the "no filter" option.
	AudienceEveryone = "everyone"
)

var (
	Statuses    = []string{StatusPublished, StatusScheduled, StatusDraft}
	TargetTypes = []string{TargetAll, TargetClass, TargetStudent}
	Audiences   = []string{AudienceEveryone, TargetClass, TargetStudent}
)

func init() {
	core.RegisterValidatorInit(func(validate *validator.Validate, _ ut.Translator) {
		validate.RegisterStructValidation(itemStructValidation, Item{})
	})
}

type Item struct {
	ID             string      `json:"id" yaml:"id"`
	Title          string      `json:"title" yaml:"title" validate:"required,notblank"`
	Content        string      `json:"content" yaml:"content" validate:"required,notblank"`
	PublishDate    string      `json:"publish_date" yaml:"publish_date" validate:"required,datetime=2006-01-02"`
	PublishTime    string      `json:"publish_time" yaml:"publish_time" validate:"required,datetime=15:04"`
	Teacher        core.Person `json:"teacher" yaml:"teacher"`
	TargetType     string      `json:"target_type" yaml:"target_type" validate:"required,oneof=all class student"`
	TargetClass    null.String `json:"target_class" yaml:"target_class"`
	TargetStudents []string    `json:"target_students" yaml:"target_students"`
	Image          null.String `json:"image" yaml:"image" validate:"omitempty,url"`
	Status         string      `json:"status" yaml:"status" validate:"required,oneof=published scheduled draft"`
}

func (n Item) EntityID() string { return n.ID }

func (n Item) WithID(id string) Item {
	c := n.Clone()
	c.ID = id
	return c
}

func (n Item) Clone() Item {
	c := n
	if n.TargetStudents != nil {
		c.TargetStudents = append(make([]string, 0, len(n.TargetStudents)), n.TargetStudents...)
	}
	return c
}

// SetTargetType changes the audience; the selected class & students are cleared.
func (n *Item) SetTargetType(targetType string) {
	n.TargetType = targetType
	n.TargetClass = null.String{}
	n.TargetStudents = nil
}

// SetTargetClass changes the selected class; the selected students are cleared.
func (n *Item) SetTargetClass(classID string) {
	n.TargetClass = null.NewString(classID, classID != "")
	n.TargetStudents = nil
}

// ToggleStudent selects studentID, or deselects it when already selected.
func (n *Item) ToggleStudent(studentID string) {
	for i, id := range n.TargetStudents {
		if id == studentID {
			n.TargetStudents = append(n.TargetStudents[:i:i], n.TargetStudents[i+1:]...)
			return
		}
	}
	n.TargetStudents = append(n.TargetStudents, studentID)
}

// Normalize drops the audience details irrelevant to the target type.
func (n *Item) Normalize() {
	switch n.TargetType {
	case TargetAll:
		n.TargetClass = null.String{}
		n.TargetStudents = nil
	case TargetClass:
		n.TargetStudents = nil
	}
	if n.TargetClass.Valid && n.TargetClass.String == "" {
		n.TargetClass = null.String{}
	}
	if n.Image.Valid && n.Image.String == "" {
		n.Image = null.String{}
	}
}

func (n *Item) clean() {
	n.Title = core.CleanString(n.Title)
	n.Content = core.CleanString(n.Content)
	n.Teacher.Name = core.CleanString(n.Teacher.Name)
	if n.TargetType == "" {
		n.TargetType = TargetAll
	}
	if n.Status == "" {
		n.Status = StatusPublished
	}
	n.Normalize()
}

func (n *Item) Validate(validate *validator.Validate) error {
	n.clean()
	return validate.Struct(n)
}

// itemStructValidation requires a class for class announcements, and students for student ones.
func itemStructValidation(sl validator.StructLevel) {
	if n, ok := sl.Current().Interface().(Item); ok {
		switch n.TargetType {
		case TargetClass:
			if !n.TargetClass.Valid {
				sl.ReportError(n.TargetClass, "target_class", "TargetClass", "required", "")
			}
		case TargetStudent:
			if len(n.TargetStudents) == 0 {
				sl.ReportError(n.TargetStudents, "target_students", "TargetStudents", "required", "")
			}
		}
	}
}

// Recipients lists the students selectable as recipients: those of classID, or all of them when classID is empty.
func Recipients(students []student.Student, classID string) []student.Student {
	if classID == "" {
		return students
	}
	return student.InClass(students, classID)
}

func audience(n Item) string {
	if n.TargetType == TargetAll {
		return AudienceEveryone
	}
	return n.TargetType
}

// Descriptor is the view descriptor of the news overview.
// News are searched by title, content or author.
var Descriptor = view.Descriptor[Item]{
	Name:   "news",
	Label:  "News",
	Plural: "news",
	Spec: collection.Spec[Item]{
		Search: func(n Item) []string { return []string{n.Title, n.Content, n.Teacher.Name} },
		Dimensions: []collection.Dimension[Item]{
			{Name: "status", Options: Statuses, Value: func(n Item) string { return n.Status }},
			{Name: "target_type", Options: Audiences, Value: audience},
		},
	},
	Messages: view.Messages{Registered: "News published successfully!"},
}
