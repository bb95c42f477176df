package main

import (
	"exusiai.dev/roster-backend/cmd/app"
)

func main() {
	app.Run()
}
