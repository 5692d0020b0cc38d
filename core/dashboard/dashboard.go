// Package dashboard assembles the screens of one dashboard session.
// Every session gets fresh stores rehydrated from the seed, and loses them when closed.
package dashboard

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/calendar"
	"github.com/trezcool/masomo-admin/core/classroom"
	"github.com/trezcool/masomo-admin/core/employee"
	"github.com/trezcool/masomo-admin/core/news"
	"github.com/trezcool/masomo-admin/core/settings"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/teacher"
	"github.com/trezcool/masomo-admin/core/view"
)

// Seed holds the records a session starts from.
type Seed struct {
	Students  []student.Student
	Teachers  []teacher.Teacher
	Classes   []classroom.ClassRoom
	Employees []employee.Employee
	News      []news.Item
	Events    []calendar.Event
	Settings  settings.Settings
}

type Options struct {
	Clock    clock.Clock
	UI       core.UIConfig
	Validate *validator.Validate
	Observer view.Observer
}

func (o Options) viewOptions() view.Options {
	return view.Options{
		Clock:       o.Clock,
		NoticeTTL:   o.UI.NoticeTTL,
		SubmitDelay: o.UI.SubmitDelay,
		CacheSize:   o.UI.ViewCacheSize,
		Observer:    o.Observer,
	}
}

type Dashboard struct {
	ID        string
	Students  *view.View[student.Student]
	Teachers  *view.View[teacher.Teacher]
	Classes   *view.View[classroom.ClassRoom]
	Employees *view.View[employee.Employee]
	News      *view.View[news.Item]
	Settings  *settings.Form

	events []calendar.Event
	clock  clock.Clock
}

func New(id string, seed *Seed, opts Options) (*Dashboard, error) {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	vopts := opts.viewOptions()
	d := &Dashboard{
		ID:     id,
		events: append([]calendar.Event(nil), seed.Events...),
		clock:  opts.Clock,
	}

	var err error
	if d.Classes, err = view.New(classroom.Descriptor, seed.Classes, vopts); err != nil {
		return nil, errors.Wrap(err, "creating classes view")
	}
	classIDs := func() []string { return classroom.IDs(d.Classes.All()) }
	if d.Students, err = view.New(student.NewDescriptor(classIDs), seed.Students, vopts); err != nil {
		return nil, errors.Wrap(err, "creating students view")
	}
	if d.Teachers, err = view.New(teacher.Descriptor, seed.Teachers, vopts); err != nil {
		return nil, errors.Wrap(err, "creating teachers view")
	}
	if d.Employees, err = view.New(employee.Descriptor, seed.Employees, vopts); err != nil {
		return nil, errors.Wrap(err, "creating employees view")
	}
	if d.News, err = view.New(news.Descriptor, seed.News, vopts); err != nil {
		return nil, errors.Wrap(err, "creating news view")
	}
	d.Settings = settings.NewForm(seed.Settings, opts.Validate, opts.Clock, opts.UI.NoticeTTL, opts.UI.SubmitDelay)
	return d, nil
}

// Calendar lays out month with the session's students & the school events.
func (d *Dashboard) Calendar(month time.Time) calendar.Month {
	return calendar.Build(month, d.Students.All(), d.events)
}

// Day returns the birthdays & events of date.
func (d *Dashboard) Day(date time.Time) calendar.Day {
	return calendar.On(date, d.Students.All(), d.events)
}

// Now is the session clock's current time.
func (d *Dashboard) Now() time.Time {
	return d.clock.Now()
}

// Recipients lists the students a news item can be sent to.
func (d *Dashboard) Recipients(classID string) []student.Student {
	return news.Recipients(d.Students.All(), classID)
}

// Close tears every screen down; no timer fires afterwards.
func (d *Dashboard) Close() {
	d.Students.Close()
	d.Teachers.Close()
	d.Classes.Close()
	d.Employees.Close()
	d.News.Close()
	d.Settings.Close()
}
