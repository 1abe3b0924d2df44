package main

import (
	"github.com/riftcoach/backend/cmd/app"
)

func main() {
	app.Run()
}
