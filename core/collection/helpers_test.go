package collection

type record struct {
	ID     string
	Name   string
	Email  string
	Status string
	Dept   string
	Tags   []string
}

func (r record) EntityID() string { return r.ID }

func (r record) WithID(id string) record {
	c := r.Clone()
	c.ID = id
	return c
}

func (r record) Clone() record {
	c := r
	if r.Tags != nil {
		c.Tags = append([]string(nil), r.Tags...)
	}
	return c
}

var recordSpec = Spec[record]{
	Search: func(r record) []string { return []string{r.Name, r.Email} },
	Dimensions: []Dimension[record]{
		{Name: "status", Options: []string{"active", "inactive"}, Value: func(r record) string { return r.Status }},
		{Name: "department", Options: []string{"Academic", "Administration"}, Value: func(r record) string { return r.Dept }},
	},
}

func ids(items []record) []string {
	r := make([]string, 0, len(items))
	for _, e := range items {
		r = append(r, e.ID)
	}
	return r
}

func seedRecords() []record {
	return []record{
		{ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@school.com", Status: "active", Dept: "Academic"},
		{ID: "2", Name: "Michael Chen", Email: "michael.chen@school.com", Status: "active", Dept: "Administration"},
		{ID: "3", Name: "Emily Davis", Email: "emily.davis@school.com", Status: "inactive", Dept: "Academic"},
	}
}
