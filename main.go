package main

import (
	_ "github.com/corkboard/corkboard/src/admintools"
	_ "github.com/corkboard/corkboard/src/migration"
	"github.com/corkboard/corkboard/src/website"
)

func main() {
	website.WebsiteCommand.Execute()
}
