package main

import (
	"github.com/micromart/orders/internal/app"
	"github.com/micromart/orders/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
