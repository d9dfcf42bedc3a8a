package main

import "workbridge/internal/app"

func main() {
	app.Run()
}
