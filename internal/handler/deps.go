package handler

import (
	"github.com/sabihanjum/Socket-Chat-Server/internal/app/chat"
	"github.com/sabihanjum/Socket-Chat-Server/internal/configs"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/limiter"
)

// AppDeps bundles everything the ops endpoints need.
type AppDeps struct {
	Config  *configs.AppConfig
	Chat    *chat.Router
	Stats   *chat.Stats
	Limiter *limiter.IPRateLimiter
}
