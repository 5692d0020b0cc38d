package settings

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
)

const (
	noticeTTL   = 3 * time.Second
	submitDelay = 500 * time.Millisecond
)

func brightwood() Settings {
	return Settings{
		School: SchoolInfo{Name: "Brightwood Academy", Email: "admin@brightwood.edu", Website: "www.brightwood.edu"},
		AcademicYear: AcademicYear{
			AcademicYearDates: AcademicYearDates{Current: "2024-2025", StartDate: "2024-09-01", EndDate: "2025-06-30"},
			Terms: []Term{
				{Name: "Fall Term", StartDate: "2024-09-01", EndDate: "2024-12-20"},
				{Name: "Spring Term", StartDate: "2025-01-10", EndDate: "2025-06-30"},
			},
		},
		Notifications: Notifications{EmailEnabled: true, SMSEnabled: true},
		Security:      Security{PasswordExpiry: 90, MFAEnabled: true, SessionTimeout: 30, AllowedIPs: []string{"192.168.1.*", "10.0.0.*"}},
	}
}

func newForm(t *testing.T) (*Form, *clock.Mock) {
	t.Helper()

	clk := clock.NewMock()
	f := NewForm(brightwood(), core.NewValidator(core.NewTranslator()), clk, noticeTTL, submitDelay)
	t.Cleanup(f.Close)
	return f, clk
}

func TestForm_Updates(t *testing.T) {
	tests := []struct {
		name    string
		update  func(f *Form) error
		check   func(t *testing.T, s Settings)
		wantErr bool
	}{
		{
			name:   "school",
			update: func(f *Form) error { return f.UpdateSchool(SchoolInfo{Name: " Oakridge ", Email: "Admin@Oakridge.edu"}) },
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, "Oakridge", s.School.Name)
				assert.Equal(t, "admin@oakridge.edu", s.School.Email)
			},
		},
		{
			name:    "school without name",
			update:  func(f *Form) error { return f.UpdateSchool(SchoolInfo{Name: " "}) },
			wantErr: true,
		},
		{
			name: "academic year keeps terms",
			update: func(f *Form) error {
				return f.UpdateAcademicYear(AcademicYearDates{Current: "2025-2026", StartDate: "2025-09-01", EndDate: "2026-06-30"})
			},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, "2025-2026", s.AcademicYear.Current)
				assert.Len(t, s.AcademicYear.Terms, 2)
			},
		},
		{
			name:    "academic year bad date",
			update:  func(f *Form) error { return f.UpdateAcademicYear(AcademicYearDates{Current: "x", StartDate: "09/01", EndDate: "2026-06-30"}) },
			wantErr: true,
		},
		{
			name:   "notifications",
			update: func(f *Form) error { return f.UpdateNotifications(Notifications{GradeUpdates: true}) },
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, Notifications{GradeUpdates: true}, s.Notifications)
			},
		},
		{
			name: "security",
			update: func(f *Form) error {
				return f.UpdateSecurity(Security{SessionTimeout: 15, AllowedIPs: []string{" 172.16.0.* ", ""}})
			},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 15, s.Security.SessionTimeout)
				assert.Equal(t, []string{"172.16.0.*", ""}, s.Security.AllowedIPs)
			},
		},
		{
			name:    "security zero timeout",
			update:  func(f *Form) error { return f.UpdateSecurity(Security{SessionTimeout: 0}) },
			wantErr: true,
		},
		{
			name:   "add term",
			update: func(f *Form) error { return f.AddTerm() },
			check: func(t *testing.T, s Settings) {
				require.Len(t, s.AcademicYear.Terms, 3)
				assert.Equal(t, Term{}, s.AcademicYear.Terms[2])
			},
		},
		{
			name:   "update term",
			update: func(f *Form) error { return f.UpdateTerm(1, Term{Name: "Summer Term", StartDate: "2025-07-01"}) },
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, "Summer Term", s.AcademicYear.Terms[1].Name)
			},
		},
		{
			name:    "update missing term",
			update:  func(f *Form) error { return f.UpdateTerm(2, Term{Name: "Winter Term"}) },
			wantErr: true,
		},
		{
			name:   "remove term",
			update: func(f *Form) error { return f.RemoveTerm(0) },
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, []Term{{Name: "Spring Term", StartDate: "2025-01-10", EndDate: "2025-06-30"}}, s.AcademicYear.Terms)
			},
		},
		{
			name:    "remove missing term",
			update:  func(f *Form) error { return f.RemoveTerm(-1) },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newForm(t)
			err := tt.update(f)
			state := f.State()

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, state.HasChanges, "failed updates leave the form clean")
				assert.Equal(t, brightwood(), state.Settings)
				return
			}
			require.NoError(t, err)
			assert.True(t, state.HasChanges)
			tt.check(t, state.Settings)
		})
	}
}

func TestForm_Save(t *testing.T) {
	f, clk := newForm(t)

	assert.Equal(t, ErrNoChanges, f.Save())

	require.NoError(t, f.AddTerm())
	require.NoError(t, f.Save())
	assert.True(t, f.State().Saving)
	assert.True(t, f.State().HasChanges)

	clk.Add(submitDelay)
	assert.Eventually(t, func() bool {
		s := f.State()
		return !s.HasChanges && s.Notice == savedText
	}, time.Second, time.Millisecond)
	assert.False(t, f.State().Saving)

	clk.Add(noticeTTL)
	assert.Eventually(t, func() bool { return f.State().Notice == "" }, time.Second, time.Millisecond)
}

func TestForm_Close(t *testing.T) {
	f, clk := newForm(t)

	require.NoError(t, f.AddTerm())
	require.NoError(t, f.Save())
	f.Close()

	clk.Add(submitDelay)
	time.Sleep(10 * time.Millisecond)
	assert.True(t, f.State().HasChanges, "closed forms are never saved")

	err := f.Save()
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("failed! Save() on a closed form = %v; want %v", err, core.ErrNotFound)
	}
	assert.False(t, f.State().Saving)
}

func TestForm_StateIsDetached(t *testing.T) {
	f, _ := newForm(t)

	s := f.State().Settings
	s.AcademicYear.Terms[0].Name = "mutated"
	s.Security.AllowedIPs[0] = "mutated"

	s = f.State().Settings
	assert.Equal(t, "Fall Term", s.AcademicYear.Terms[0].Name)
	assert.Equal(t, "192.168.1.*", s.Security.AllowedIPs[0])
}

func TestErrors(t *testing.T) {
	f, _ := newForm(t)
	err := f.RemoveTerm(5)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
