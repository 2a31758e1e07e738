package main

import "talento_backend/internal/app"

func main() {
	app.Run()
}
