package main

import (
	"fmt"
	"os"

	"github.com/MoetezAbbassi/mealscan/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
