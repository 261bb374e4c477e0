package main

import "github.com/icco/beatglow/cmd"

func main() {
	cmd.Execute()
}
