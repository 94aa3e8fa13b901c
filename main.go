package main

import "loom_server_go/cmd"

func main() {
	cmd.Execute()
}
