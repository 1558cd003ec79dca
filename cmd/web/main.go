package main

import "giftlist_backend/internal/app"

func main() {
	app.Run()
}
