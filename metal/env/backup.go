package env

type BackupEnvironment struct {
	// Cron is a standard five-field cron expression.
	Cron string `validate:"required,cron"`
	Dir  string `validate:"required,min=1"`
	// MaxKeep bounds how many dump files are retained.
	MaxKeep int `validate:"required,gt=0"`
}
