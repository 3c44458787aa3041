package main

import "mgtboard/cmd/client/cmd"

func main() {
	cmd.Execute()
}
