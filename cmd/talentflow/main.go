package main

import "github.com/talentflow/talentflow/internal/cli"

func main() {
	cli.Run()
}
