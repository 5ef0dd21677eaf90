// Package autoload initializes the global zerolog logger from the
// environment. Import for side effects:
//
//	import _ "github.com/cmos-collections/callcore/pkg/logger/autoload"
package autoload

import (
	configx "github.com/cmos-collections/callcore/pkg/config"
	logx "github.com/cmos-collections/callcore/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
