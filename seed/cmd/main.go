package main

import (
	"fmt"
	"os"

	"github.com/legit-games/catalog-service/seed"
)

func main() {
	if err := seed.RunFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("seed completed successfully")
}
