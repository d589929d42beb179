// Package autoload initializes the global logger from the environment when
// imported for side effects.
package autoload

import (
	configx "shopping-assistant/pkg/config"
	logx "shopping-assistant/pkg/logger"
)

func init() {
	conf := configx.MustNew[logx.Config]("LOG")
	logx.Init(*conf)
}
