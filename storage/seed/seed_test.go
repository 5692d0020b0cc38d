package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/news"
)

func TestLoad(t *testing.T) {
	data, err := Load(core.NewValidator(core.NewTranslator()))
	require.NoError(t, err)

	tests := []struct {
		collection string
		wantIDs    []string
	}{
		{"students", []string{"1", "2", "3"}},
		{"teachers", []string{"1", "2", "3"}},
		{"classes", []string{"1", "2", "3"}},
		{"employees", []string{"1", "2", "3"}},
		{"news", []string{"1", "2", "3"}},
		{"events", []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		ids, err := IDs(data, tt.collection)
		require.NoError(t, err)
		if !assert.Equal(t, tt.wantIDs, ids) {
			t.Errorf("failed! %s", tt.collection)
		}
	}

	_, err = IDs(data, "parents")
	assert.Error(t, err)

	t.Run("records", func(t *testing.T) {
		assert.Equal(t, "Emma Thompson", data.Students[0].FullName())
		assert.Equal(t, "(555) 123-4568", data.Students[0].ParentInfo.MotherPhone)
		assert.Equal(t, []string{"English Literature", "History"}, data.Teachers[2].Subjects)
		assert.Len(t, data.Classes[1].Schedule, 4)
		assert.Equal(t, "Student Services", data.Employees[2].Department)
		assert.Equal(t, "Spring Term", data.Settings.AcademicYear.Terms[1].Name)
		assert.Equal(t, "2024-2025", data.Settings.AcademicYear.Current)
		assert.Equal(t, []string{"192.168.1.*", "10.0.0.*"}, data.Settings.Security.AllowedIPs)
	})

	t.Run("nullable news fields", func(t *testing.T) {
		concert, meeting := data.News[0], data.News[1]
		assert.True(t, concert.Image.Valid)
		assert.False(t, concert.TargetClass.Valid)
		assert.Equal(t, news.TargetClass, meeting.TargetType)
		assert.Equal(t, "2", meeting.TargetClass.String)
		assert.False(t, meeting.Image.Valid)
		assert.Equal(t, []string{"1", "3"}, data.News[2].TargetStudents)
	})
}
