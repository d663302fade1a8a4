package spap

// Logger is the logging contract shared by the binaries; charmlog provides
// the implementation. Messages take a leading value and key/value pairs.
type Logger interface {
	Debug(interface{}, ...interface{})
	Info(interface{}, ...interface{})
	Warn(interface{}, ...interface{})
	Error(interface{}, ...interface{})
	Fatal(interface{}, ...interface{})

	// With returns a Logger carrying the given key/value context.
	With(...interface{}) Logger
}
