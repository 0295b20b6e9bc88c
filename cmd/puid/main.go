package main

import "github.com/aitorfernandez/puid/cmd"

func main() {
	cmd.Execute()
}
