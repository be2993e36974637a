package main

import "github.com/tidelight/aipane/cmd"

func main() {
	cmd.Execute()
}
