// cmd/nwbench/main.go
package main

import (
	"nwbench/internal/app"
	"nwbench/internal/appshell"
)

func main() {
	appshell.Main(app.Run)
}
