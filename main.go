package main

import "github.com/notmcp/notmcp/cmd"

func main() {
	cmd.Execute()
}
