package main

import (
	"os"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
