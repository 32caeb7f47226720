package main

import (
	"flag"

	"github.com/codecircle/cctui/internal/app"
	"github.com/codecircle/cctui/internal/config"
	"go.uber.org/fx"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to config file")
	baseURLFlag := flag.String("base-url", "", "backend base URL (overrides config)")
	flag.Parse()

	fx.New(
		app.Module(app.Params{
			ConfigPath: *configFlag,
			BaseURL:    *baseURLFlag,
		}),
		fx.NopLogger,
	).Run()
}
