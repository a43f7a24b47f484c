package main

import (
	"log"

	"scheduler-backend/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
