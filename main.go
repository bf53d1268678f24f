package main

import "queue-manager/cmd"

func main() {
	cmd.Execute()
}
