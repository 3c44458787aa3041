package main

import "mgtboard/cmd/server/cmd"

func main() {
	cmd.Execute()
}
