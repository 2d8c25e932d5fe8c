package main

import "github.com/mikeMule/gebeta-client/cmd"

func main() {
	cmd.Execute()
}
