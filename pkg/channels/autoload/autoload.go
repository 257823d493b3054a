// Package autoload registers all built-in channel factories via their
// init() functions. Import it for side effects from main.
package autoload

import (
	_ "adk/pkg/channels/telegram"
	_ "adk/pkg/channels/web"
)
