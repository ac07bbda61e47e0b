package env

type LogsEnvironment struct {
	Level string `validate:"required,min=1"`
	// Dir is a format string receiving the current date, e.g.
	// "storage/logs/app-%s.log".
	Dir        string `validate:"required,min=1"`
	DateFormat string `validate:"required,min=1"`
}
