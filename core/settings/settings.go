// Package settings implements the system configuration form.
// Changes stay local to the form until saved; saving is simulated with a short latency.
package settings

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/signal"
)

const savedText = "Configuration saved successfully!"

// ErrNoChanges is returned when saving a form without unsaved changes.
var ErrNoChanges = errors.New("no unsaved changes")

type (
	SchoolInfo struct {
		Name    string `json:"name" yaml:"name" validate:"required,notblank"`
		Address string `json:"address" yaml:"address"`
		Phone   string `json:"phone" yaml:"phone"`
		Email   string `json:"email" yaml:"email" validate:"omitempty,email"`
		Website string `json:"website" yaml:"website"`
		Logo    string `json:"logo" yaml:"logo" validate:"omitempty,url"`
	}

	Term struct {
		Name      string `json:"name" yaml:"name"`
		StartDate string `json:"start_date" yaml:"start_date" validate:"omitempty,datetime=2006-01-02"`
		EndDate   string `json:"end_date" yaml:"end_date" validate:"omitempty,datetime=2006-01-02"`
	}

	// AcademicYearDates are the fields of the academic year besides its terms.
	AcademicYearDates struct {
		Current   string `json:"current" yaml:"current" validate:"required"`
		StartDate string `json:"start_date" yaml:"start_date" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"end_date" yaml:"end_date" validate:"required,datetime=2006-01-02"`
	}

	AcademicYear struct {
		AcademicYearDates `yaml:",inline"`
		Terms             []Term `json:"terms" yaml:"terms" validate:"dive"`
	}

	Notifications struct {
		EmailEnabled      bool `json:"email_enabled" yaml:"email_enabled"`
		SMSEnabled        bool `json:"sms_enabled" yaml:"sms_enabled"`
		AttendanceAlerts  bool `json:"attendance_alerts" yaml:"attendance_alerts"`
		GradeUpdates      bool `json:"grade_updates" yaml:"grade_updates"`
		NewsAnnouncements bool `json:"news_announcements" yaml:"news_announcements"`
	}

	Security struct {
		PasswordExpiry int      `json:"password_expiry" yaml:"password_expiry" validate:"min=0"` // days
		MFAEnabled     bool     `json:"mfa_enabled" yaml:"mfa_enabled"`
		SessionTimeout int      `json:"session_timeout" yaml:"session_timeout" validate:"min=1"` // minutes
		AllowedIPs     []string `json:"allowed_ips" yaml:"allowed_ips"`
	}

	Settings struct {
		School        SchoolInfo    `json:"school" yaml:"school"`
		AcademicYear  AcademicYear  `json:"academic_year" yaml:"academic_year"`
		Notifications Notifications `json:"notifications" yaml:"notifications"`
		Security      Security      `json:"security" yaml:"security"`
	}
)

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	c := s
	c.AcademicYear.Terms = append([]Term(nil), s.AcademicYear.Terms...)
	c.Security.AllowedIPs = append([]string(nil), s.Security.AllowedIPs...)
	return c
}

// State is the renderable state of a Form.
type State struct {
	Settings   Settings `json:"settings"`
	HasChanges bool     `json:"has_changes"`
	Saving     bool     `json:"saving"`
	Notice     string   `json:"notice"`
}

// Form edits a private copy of the settings.
type Form struct {
	mu         sync.Mutex
	validate   *validator.Validate
	settings   Settings
	hasChanges bool
	notice     *signal.Notice
	submits    *signal.Submitter
}

func NewForm(initial Settings, validate *validator.Validate, clk clock.Clock, noticeTTL, submitDelay time.Duration) *Form {
	if clk == nil {
		clk = clock.New()
	}
	return &Form{
		validate: validate,
		settings: initial.Clone(),
		notice:   signal.NewNotice(clk, noticeTTL),
		submits:  signal.NewSubmitter(clk, submitDelay),
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		Settings:   f.settings.Clone(),
		HasChanges: f.hasChanges,
		Saving:     f.submits.Pending(),
		Notice:     f.notice.Text(),
	}
}

// change validates v and applies fn under lock, flagging the form as changed.
func (f *Form) change(v interface{}, fn func(s *Settings) error) error {
	if v != nil {
		if err := f.validate.Struct(v); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := fn(&f.settings); err != nil {
		return err
	}
	f.hasChanges = true
	return nil
}

func (f *Form) UpdateSchool(info SchoolInfo) error {
	info.Name = core.CleanString(info.Name)
	info.Email = core.CleanString(info.Email, true /* lower */)
	return f.change(&info, func(s *Settings) error {
		s.School = info
		return nil
	})
}

func (f *Form) UpdateAcademicYear(dates AcademicYearDates) error {
	return f.change(&dates, func(s *Settings) error {
		s.AcademicYear.AcademicYearDates = dates
		return nil
	})
}

func (f *Form) UpdateNotifications(n Notifications) error {
	return f.change(nil, func(s *Settings) error {
		s.Notifications = n
		return nil
	})
}

func (f *Form) UpdateSecurity(sec Security) error {
	ips := make([]string, 0, len(sec.AllowedIPs))
	for _, ip := range sec.AllowedIPs {
		ips = append(ips, core.CleanString(ip))
	}
	sec.AllowedIPs = ips
	return f.change(&sec, func(s *Settings) error {
		s.Security = sec
		return nil
	})
}

// AddTerm appends a blank term.
func (f *Form) AddTerm() error {
	return f.change(nil, func(s *Settings) error {
		s.AcademicYear.Terms = append(s.AcademicYear.Terms, Term{})
		return nil
	})
}

func (f *Form) UpdateTerm(index int, term Term) error {
	term.Name = core.CleanString(term.Name)
	return f.change(&term, func(s *Settings) error {
		if index < 0 || index >= len(s.AcademicYear.Terms) {
			return errors.Wrapf(core.ErrNotFound, "term %d", index)
		}
		s.AcademicYear.Terms[index] = term
		return nil
	})
}

func (f *Form) RemoveTerm(index int) error {
	return f.change(nil, func(s *Settings) error {
		terms := s.AcademicYear.Terms
		if index < 0 || index >= len(terms) {
			return errors.Wrapf(core.ErrNotFound, "term %d", index)
		}
		s.AcademicYear.Terms = append(terms[:index:index], terms[index+1:]...)
		return nil
	})
}

// Save clears the unsaved changes once the simulated latency elapses.
func (f *Form) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasChanges {
		return ErrNoChanges
	}
	submitted := f.submits.Submit(func() {
		f.mu.Lock()
		f.hasChanges = false
		f.mu.Unlock()

		f.notice.Set(savedText)
	})
	if !submitted {
		return errors.Wrap(core.ErrNotFound, "settings form closed")
	}
	return nil
}

// Close stops the form's timers.
func (f *Form) Close() {
	f.notice.Close()
	f.submits.Close()
}
