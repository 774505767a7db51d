package logger

import "go.uber.org/zap"

// Init builds the process-wide zap logger and installs it as the global.
// Production gets sampled JSON output, anything else the console encoder.
func Init(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.DisableStacktrace = true
		l, err = cfg.Build()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("logger init: " + err.Error())
	}
	zap.ReplaceGlobals(l)
	return l
}
