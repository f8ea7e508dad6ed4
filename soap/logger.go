package soap

// Logger is the minimal logging interface used by channel factories and dispatchers. It is
// satisfied by *log.Logger and by the test harness loggers.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}
