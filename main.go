package main

import "github.com/CsnCaio/SROA-challenge/internal/app"

func main() {
	app.Run()
}
