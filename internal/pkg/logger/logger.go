package logger

import "go.uber.org/zap"

// New creates a zap logger configured for the given environment. Production
// gets JSON output at info level, everything else the development console.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// NewNamed creates an environment-configured logger named after the service.
func NewNamed(env, name string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
