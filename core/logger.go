package core

// Logger is any service that can log app events.
// expected args fmt: error | map[string]interface{}
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Actor identifies who triggered a logged event; pass it as one of a Logger's args.
type Actor struct {
	ID    string
	Name  string
	Email string
}
