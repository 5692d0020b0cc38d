package core

// Person is a named member of staff with a picture, as shown on cards.
type Person struct {
	Name  string `json:"name" yaml:"name" validate:"required,notblank"`
	Image string `json:"image" yaml:"image" validate:"omitempty,url"`
}
