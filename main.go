package main

import "store/cmd"

func main() {
	cmd.Execute()
}
