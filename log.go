package hbars

import "github.com/juju/loggo"

// logger is the package-wide logger. The built-in "log" helper writes
// to it at INFO level, below the WARNING level set here, so its output
// stays hidden until a consumer raises the verbosity. Consumers tune its
// verbosity the normal loggo way, e.g.:
//
//	loggo.GetLogger("hbars").SetLogLevel(loggo.DEBUG)
var logger = loggo.GetLogger("hbars")

func init() {
	_ = logger.SetLogLevel(loggo.WARNING)
}
