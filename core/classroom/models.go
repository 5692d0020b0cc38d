package classroom

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
	"github.com/trezcool/masomo-admin/core/view"
)

// ErrLastSlot is returned when removing the only slot of a schedule.
var ErrLastSlot = errors.New("a class needs at least one schedule slot")

var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

type Slot struct {
	Day     string `json:"day" yaml:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	Time    string `json:"time" yaml:"time" validate:"required,notblank"`
	Subject string `json:"subject" yaml:"subject" validate:"required,notblank"`
}

type ClassRoom struct {
	ID         string      `json:"id" yaml:"id"`
	ClassName  string      `json:"class_name" yaml:"class_name" validate:"required,notblank"`
	Teacher    core.Person `json:"teacher" yaml:"teacher"`
	Assistant  core.Person `json:"assistant" yaml:"assistant"`
	RoomNumber string      `json:"room_number" yaml:"room_number" validate:"required"`
	Schedule   []Slot      `json:"schedule" yaml:"schedule" validate:"min=1,dive"`
}

// Clean trims the slot's fields.
func (s *Slot) Clean() {
	s.Day = core.CleanString(s.Day)
	s.Time = core.CleanString(s.Time)
	s.Subject = core.CleanString(s.Subject)
}

func (c ClassRoom) EntityID() string { return c.ID }

func (c ClassRoom) WithID(id string) ClassRoom {
	cp := c.Clone()
	cp.ID = id
	return cp
}

func (c ClassRoom) Clone() ClassRoom {
	cp := c
	if c.Schedule != nil {
		cp.Schedule = append(make([]Slot, 0, len(c.Schedule)), c.Schedule...)
	}
	return cp
}

// AddScheduleSlot appends an empty slot to the schedule.
func (c ClassRoom) AddScheduleSlot() ClassRoom {
	cp := c.Clone()
	cp.Schedule = append(cp.Schedule, Slot{})
	return cp
}

// UpdateScheduleSlot replaces the slot at index.
func (c ClassRoom) UpdateScheduleSlot(index int, slot Slot) (ClassRoom, error) {
	if index < 0 || index >= len(c.Schedule) {
		return c, errors.Wrapf(core.ErrNotFound, "schedule slot %d", index)
	}
	cp := c.Clone()
	cp.Schedule[index] = slot
	return cp, nil
}

// RemoveScheduleSlot removes the slot at index; the last slot can't be removed.
func (c ClassRoom) RemoveScheduleSlot(index int) (ClassRoom, error) {
	if index < 0 || index >= len(c.Schedule) {
		return c, errors.Wrapf(core.ErrNotFound, "schedule slot %d", index)
	}
	if len(c.Schedule) == 1 {
		return c, ErrLastSlot
	}
	cp := c.Clone()
	cp.Schedule = append(cp.Schedule[:index], cp.Schedule[index+1:]...)
	return cp, nil
}

func (c *ClassRoom) clean() {
	c.ClassName = core.CleanString(c.ClassName)
	c.RoomNumber = core.CleanString(c.RoomNumber)
	c.Teacher.Name = core.CleanString(c.Teacher.Name)
	c.Assistant.Name = core.CleanString(c.Assistant.Name)
	for i := range c.Schedule {
		c.Schedule[i].Clean()
	}
}

func (c *ClassRoom) Validate(validate *validator.Validate) error {
	c.clean()
	return validate.Struct(c)
}

// IDs returns the ids of classes, in order.
func IDs(classes []ClassRoom) []string {
	ids := make([]string, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.ID)
	}
	return ids
}

// Descriptor is the view descriptor of the classes screen.
// Classes are searched by name or teacher; there are no filter dropdowns.
var Descriptor = view.Descriptor[ClassRoom]{
	Name:   "classes",
	Label:  "Class",
	Plural: "classes",
	Spec: collection.Spec[ClassRoom]{
		Search: func(c ClassRoom) []string { return []string{c.ClassName, c.Teacher.Name} },
	},
}
