package main

import "creatorhub_backend/internal/app"

func main() {
	app.Run()
}
