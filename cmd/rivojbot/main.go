package main

import (
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may be set by the supervisor.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
