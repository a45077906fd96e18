package main

import (
	"github.com/SimonGDunne/joplin-diary-tool/internal/cmd"
)

func main() {
	cmd.Execute()
}
