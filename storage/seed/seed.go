// Package seed provides the mock records every dashboard session starts from.
// Fixtures are embedded YAML files, decoded and validated once and then copied into each session's stores.
package seed

import (
	"embed"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/masomo-admin/core/calendar"
	"github.com/trezcool/masomo-admin/core/classroom"
	"github.com/trezcool/masomo-admin/core/dashboard"
	"github.com/trezcool/masomo-admin/core/employee"
	"github.com/trezcool/masomo-admin/core/news"
	"github.com/trezcool/masomo-admin/core/settings"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/teacher"
)

//go:embed fixtures/*.yaml
var fixturesFS embed.FS

// Collections lists the names of the entity fixtures.
var Collections = []string{"students", "teachers", "classes", "employees", "news", "events"}

// Load decodes and validates all the fixtures.
func Load(validate *validator.Validate) (*dashboard.Seed, error) {
	data := new(dashboard.Seed)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"students", func() (err error) { data.Students, err = Students(validate); return }},
		{"teachers", func() (err error) { data.Teachers, err = Teachers(validate); return }},
		{"classes", func() (err error) { data.Classes, err = Classes(validate); return }},
		{"employees", func() (err error) { data.Employees, err = Employees(validate); return }},
		{"news", func() (err error) { data.News, err = News(validate); return }},
		{"events", func() (err error) { data.Events, err = Events(validate); return }},
		{"settings", func() (err error) { data.Settings, err = Settings(validate); return }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, errors.Wrapf(err, "loading %s fixtures", step.name)
		}
	}
	return data, nil
}

func decode(name string, out interface{}) error {
	b, err := fixturesFS.ReadFile(path.Join("fixtures", name+".yaml"))
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	if err = yaml.Unmarshal(b, out); err != nil {
		return errors.Wrapf(err, "decoding %s", name)
	}
	return nil
}

func Students(validate *validator.Validate) ([]student.Student, error) {
	var students []student.Student
	if err := decode("students", &students); err != nil {
		return nil, err
	}
	for i := range students {
		if err := students[i].Validate(validate); err != nil {
			return nil, errors.Wrapf(err, "student %q", students[i].ID)
		}
	}
	return students, nil
}

func Teachers(validate *validator.Validate) ([]teacher.Teacher, error) {
	var teachers []teacher.Teacher
	if err := decode("teachers", &teachers); err != nil {
		return nil, err
	}
	for i := range teachers {
		if err := teachers[i].Validate(validate); err != nil {
			return nil, errors.Wrapf(err, "teacher %q", teachers[i].ID)
		}
	}
	return teachers, nil
}

func Classes(validate *validator.Validate) ([]classroom.ClassRoom, error) {
	var classes []classroom.ClassRoom
	if err := decode("classes", &classes); err != nil {
		return nil, err
	}
	for i := range classes {
		if err := classes[i].Validate(validate); err != nil {
			return nil, errors.Wrapf(err, "class %q", classes[i].ID)
		}
	}
	return classes, nil
}

func Employees(validate *validator.Validate) ([]employee.Employee, error) {
	var employees []employee.Employee
	if err := decode("employees", &employees); err != nil {
		return nil, err
	}
	for i := range employees {
		if err := employees[i].Validate(validate); err != nil {
			return nil, errors.Wrapf(err, "employee %q", employees[i].ID)
		}
	}
	return employees, nil
}

func News(validate *validator.Validate) ([]news.Item, error) {
	var items []news.Item
	if err := decode("news", &items); err != nil {
		return nil, err
	}
	for i := range items {
		if err := items[i].Validate(validate); err != nil {
			return nil, errors.Wrapf(err, "news %q", items[i].ID)
		}
	}
	return items, nil
}

func Events(validate *validator.Validate) ([]calendar.Event, error) {
	var events []calendar.Event
	if err := decode("events", &events); err != nil {
		return nil, err
	}
	if err := calendar.Validate(events, validate); err != nil {
		return nil, err
	}
	return events, nil
}

func Settings(validate *validator.Validate) (settings.Settings, error) {
	var s settings.Settings
	if err := decode("settings", &s); err != nil {
		return s, err
	}
	if err := validate.Struct(s); err != nil {
		return s, errors.Wrap(err, "settings")
	}
	return s, nil
}

// IDs returns the ids of the named collection of d, in order.
func IDs(d *dashboard.Seed, collection string) ([]string, error) {
	var ids []string
	switch collection {
	case "students":
		ids = entityIDs(d.Students)
	case "teachers":
		ids = entityIDs(d.Teachers)
	case "classes":
		ids = entityIDs(d.Classes)
	case "employees":
		ids = entityIDs(d.Employees)
	case "news":
		ids = entityIDs(d.News)
	case "events":
		for _, e := range d.Events {
			ids = append(ids, e.ID)
		}
	default:
		return nil, errors.Errorf("unknown collection %q", collection)
	}
	return ids, nil
}

func entityIDs[T interface{ EntityID() string }](items []T) []string {
	ids := make([]string, 0, len(items))
	for _, e := range items {
		ids = append(ids, e.EntityID())
	}
	return ids
}
