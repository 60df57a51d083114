package main

import (
	"os"

	"github.com/omerda/jira-reminder/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
