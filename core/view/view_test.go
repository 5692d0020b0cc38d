package view

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
)

const (
	noticeTTL   = 3 * time.Second
	submitDelay = 500 * time.Millisecond
	waitFor     = time.Second
	tick        = time.Millisecond
)

type member struct {
	ID     string
	Name   string
	Status string
	Tags   []string
}

func (m member) EntityID() string { return m.ID }

func (m member) WithID(id string) member {
	c := m.Clone()
	c.ID = id
	return c
}

func (m member) Clone() member {
	c := m
	c.Tags = append([]string(nil), m.Tags...)
	return c
}

var memberDesc = Descriptor[member]{
	Name:  "members",
	Label: "Member",
	Spec: collection.Spec[member]{
		Search: func(m member) []string { return []string{m.Name} },
		Dimensions: []collection.Dimension[member]{
			{Name: "status", Options: []string{"active", "inactive"}, Value: func(m member) string { return m.Status }},
		},
	},
}

type mutation struct{ collection, op string }

type recorder struct {
	mu   sync.Mutex
	muts []mutation
}

func (r *recorder) Mutated(coll, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.muts = append(r.muts, mutation{coll, op})
}

func (r *recorder) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, 0, len(r.muts))
	for _, m := range r.muts {
		ops = append(ops, m.op)
	}
	return ops
}

func newMemberView(t *testing.T) (*View[member], *clock.Mock, *recorder) {
	t.Helper()

	clk := clock.NewMock()
	rec := new(recorder)
	v, err := New(memberDesc, []member{
		{ID: "1", Name: "Sarah Johnson", Status: "active", Tags: []string{"math"}},
		{ID: "2", Name: "Michael Chen", Status: "active"},
		{ID: "3", Name: "Emily Davis", Status: "inactive"},
	}, Options{Clock: clk, NoticeTTL: noticeTTL, SubmitDelay: submitDelay, CacheSize: 8, Observer: rec})
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v, clk, rec
}

func listIDs(res Result[member]) []string {
	ids := make([]string, 0, len(res.Items))
	for _, m := range res.Items {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestView_List(t *testing.T) {
	v, _, _ := newMemberView(t)

	res := v.List(collection.Query{Filters: map[string]string{"status": "active"}})
	assert.Equal(t, []string{"1", "2"}, listIDs(res))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 3, res.Total)
	assert.Empty(t, res.EmptyMessage)

	res = v.List(collection.Query{Search: "  zz "})
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, "No members found matching your criteria.", res.EmptyMessage)

	t.Run("cached results are detached", func(t *testing.T) {
		res := v.List(collection.Query{})
		res.Items[0].Tags[0] = "mutated"

		res = v.List(collection.Query{})
		assert.Equal(t, "math", res.Items[0].Tags[0])
	})

	t.Run("cache keys cannot be forged by the search term", func(t *testing.T) {
		v, _, _ := newMemberView(t)

		res := v.List(collection.Query{Search: "a", Filters: map[string]string{"status": "active"}})
		assert.Equal(t, []string{"1", "2"}, listIDs(res))

		forged := collection.Query{Search: "a\x00status=active"}
		res = v.List(forged)
		assert.Empty(t, res.Items)
	})

	t.Run("mutations invalidate", func(t *testing.T) {
		q := collection.Query{Search: "o"}
		before := listIDs(v.List(q))
		v.Add(member{Name: "Olivia Brown", Status: "active"})
		after := listIDs(v.List(q))
		assert.Equal(t, append(before, "4"), after)
	})
}

func TestView_AddAndNotice(t *testing.T) {
	v, clk, rec := newMemberView(t)

	added := v.Add(member{ID: "ignored", Name: "Olivia Brown", Status: "active"})
	assert.Equal(t, "4", added.ID)
	assert.Equal(t, "Member added successfully!", v.Notice())
	assert.Equal(t, []string{OpAdd}, rec.ops())

	all := v.All()
	require.Len(t, all, 4)
	assert.Equal(t, "4", all[3].ID)

	clk.Add(noticeTTL)
	assert.Eventually(t, func() bool { return v.Notice() == "" }, waitFor, tick)
}

func TestView_Get(t *testing.T) {
	v, _, _ := newMemberView(t)

	m, err := v.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Michael Chen", m.Name)

	_, err = v.Get("42")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestView_Register(t *testing.T) {
	v, clk, rec := newMemberView(t)

	require.True(t, v.Register(member{Name: "First"}))
	require.True(t, v.Register(member{Name: "Second"}))
	assert.True(t, v.Signals().Submitting)

	clk.Add(submitDelay)
	assert.Eventually(t, func() bool { return v.Notice() == "Member registered successfully!" }, waitFor, tick)

	all := v.All()
	require.Len(t, all, 4, "only the latest registration lands")
	assert.Equal(t, "Second", all[3].Name)
	assert.False(t, v.Signals().Submitting)
	assert.Equal(t, []string{OpRegister}, rec.ops())
}

func TestView_Edit(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		v, _, rec := newMemberView(t)

		working, err := v.BeginEdit("1")
		require.NoError(t, err)
		working.Tags[0] = "physics"

		stored, _ := v.Get("1")
		assert.Equal(t, []string{"math"}, stored.Tags, "working copy is detached")

		revised, err := v.ReviseEdit(func(m member) (member, error) {
			m.Name = "Sarah J."
			return m, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Sarah J.", revised.Name)

		stored, _ = v.Get("1")
		assert.Equal(t, "Sarah Johnson", stored.Name, "revisions stay out of the store")

		updated, err := v.CommitEdit(member{ID: "99", Name: "Sarah Jones", Status: "inactive"})
		require.NoError(t, err)
		assert.Equal(t, "1", updated.ID)

		stored, _ = v.Get("1")
		assert.Equal(t, "Sarah Jones", stored.Name)
		assert.Equal(t, "Member updated successfully!", v.Notice())
		assert.Nil(t, v.Signals().Editing)
		assert.Equal(t, []string{OpUpdate}, rec.ops())

		_, err = v.CommitEdit(member{})
		assert.Equal(t, core.ErrNoEditTarget, err)
	})

	t.Run("save", func(t *testing.T) {
		errBlankName := errors.New("blank name")
		nonBlank := func(m member) (member, error) {
			if m.Name == "" {
				return m, errBlankName
			}
			return m, nil
		}

		v, _, _ := newMemberView(t)

		_, err := v.SaveEdit(nonBlank)
		assert.Equal(t, core.ErrNoEditTarget, err)

		_, err = v.BeginEdit("2")
		require.NoError(t, err)
		_, err = v.ReviseEdit(func(m member) (member, error) {
			m.Name, m.Status = "", "inactive"
			return m, nil
		})
		require.NoError(t, err)

		_, err = v.SaveEdit(nonBlank)
		assert.Equal(t, errBlankName, err)
		working, ok := v.Editing()
		assert.True(t, ok, "rejected working copy stays under edit")
		assert.Equal(t, "2", working.ID)
		stored, _ := v.Get("2")
		assert.Equal(t, "active", stored.Status)

		_, err = v.ReviseEdit(func(m member) (member, error) {
			m.Name = "Michael C."
			return m, nil
		})
		require.NoError(t, err)

		saved, err := v.SaveEdit(nonBlank)
		require.NoError(t, err)
		assert.Equal(t, "inactive", saved.Status)
		assert.Equal(t, "Michael C.", saved.Name)
		_, ok = v.Editing()
		assert.False(t, ok)
		assert.Equal(t, []string{"2", "3"}, listIDs(v.List(collection.Query{Filters: map[string]string{"status": "inactive"}})))
	})

	t.Run("cancel", func(t *testing.T) {
		v, _, rec := newMemberView(t)

		_, err := v.BeginEdit("3")
		require.NoError(t, err)
		v.CancelEdit()

		_, ok := v.Editing()
		assert.False(t, ok)
		assert.Empty(t, v.Notice())
		assert.Empty(t, rec.ops())

		_, err = v.ReviseEdit(func(m member) (member, error) { return m, nil })
		assert.Equal(t, core.ErrNoEditTarget, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		v, _, _ := newMemberView(t)

		_, err := v.BeginEdit("42")
		assert.True(t, errors.Is(err, core.ErrNotFound))
	})

	t.Run("deleting another entity keeps the edit", func(t *testing.T) {
		v, _, rec := newMemberView(t)

		_, err := v.BeginEdit("1")
		require.NoError(t, err)
		require.NoError(t, v.RequestDelete("2"))
		_, err = v.ConfirmDelete()
		require.NoError(t, err)

		_, ok := v.Editing()
		assert.True(t, ok)
		assert.Equal(t, []string{OpDelete}, rec.ops())
	})
}

func TestView_Delete(t *testing.T) {
	t.Run("last request wins", func(t *testing.T) {
		v, clk, rec := newMemberView(t)

		require.NoError(t, v.RequestDelete("1"))
		require.NoError(t, v.RequestDelete("2"))
		assert.Equal(t, "2", v.Signals().PendingDelete)

		id, err := v.ConfirmDelete()
		require.NoError(t, err)
		assert.Equal(t, "2", id)
		assert.Equal(t, []string{"1", "3"}, listIDs(v.List(collection.Query{})))
		assert.Equal(t, "Member deleted successfully!", v.Notice())
		assert.Equal(t, []string{OpDelete}, rec.ops())

		_, err = v.ConfirmDelete()
		assert.Equal(t, core.ErrNoPendingDelete, err)

		clk.Add(noticeTTL)
		assert.Eventually(t, func() bool { return v.Notice() == "" }, waitFor, tick)
	})

	t.Run("cancel", func(t *testing.T) {
		v, _, _ := newMemberView(t)

		require.NoError(t, v.RequestDelete("1"))
		v.CancelDelete()
		assert.Empty(t, v.Signals().PendingDelete)
		assert.Len(t, v.All(), 3)
	})

	t.Run("unknown id", func(t *testing.T) {
		v, _, _ := newMemberView(t)

		err := v.RequestDelete("42")
		assert.True(t, errors.Is(err, core.ErrNotFound))
		assert.Empty(t, v.Signals().PendingDelete)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		v, _, _ := newMemberView(t)

		require.NoError(t, v.RequestDelete("3"))
		_, err := v.ConfirmDelete()
		require.NoError(t, err)

		added := v.Add(member{Name: "Olivia Brown"})
		assert.Equal(t, "4", added.ID)
	})
}

func TestView_EditAndDeleteExclude(t *testing.T) {
	v, _, _ := newMemberView(t)

	_, err := v.BeginEdit("1")
	require.NoError(t, err)
	require.NoError(t, v.RequestDelete("1"))

	snap := v.Signals()
	assert.Nil(t, snap.Editing, "requesting the deletion drops the edit")
	assert.Equal(t, "1", snap.PendingDelete)

	_, err = v.BeginEdit("1")
	require.NoError(t, err)

	snap = v.Signals()
	assert.Empty(t, snap.PendingDelete, "editing drops the pending deletion")
	require.NotNil(t, snap.Editing)
	assert.Equal(t, "1", snap.Editing.ID)

	// other entities don't interfere
	require.NoError(t, v.RequestDelete("2"))
	snap = v.Signals()
	assert.NotNil(t, snap.Editing)
	assert.Equal(t, "2", snap.PendingDelete)
}

func TestView_Close(t *testing.T) {
	v, clk, _ := newMemberView(t)

	v.Add(member{Name: "Olivia Brown"})
	require.True(t, v.Register(member{Name: "Late"}))
	v.Close()

	assert.Empty(t, v.Notice())
	assert.False(t, v.Register(member{Name: "Later"}))

	clk.Add(noticeTTL)
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, v.All(), 4, "pending registration never lands")
}

func TestView_Filters(t *testing.T) {
	v, _, _ := newMemberView(t)

	assert.Equal(t, []collection.DimensionOptions{
		{Name: "status", Default: collection.All, Options: []string{"active", "inactive"}},
	}, v.Filters())
	assert.Equal(t, "members", v.Name())
	assert.Equal(t, "Member", v.Label())
}
