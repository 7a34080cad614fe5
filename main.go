package main

import "github.com/wolfitem/ai-writer/cmd"

func main() {
	cmd.Execute()
}
