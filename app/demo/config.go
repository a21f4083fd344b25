package demo

import (
	"github.com/upperxcode/shelf-plus/core/server"
)

type Config struct {
	Server server.Config

	AppName   string  `env:"APP_NAME" envDefault:"shelfplus-demo"`
	Env       string  `env:"APP_ENV" envDefault:"development"`
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"50"`
	RateBurst int     `env:"RATE_BURST" envDefault:"100"`
}
