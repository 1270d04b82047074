package main

import "github.com/vicky-gonsalves/deno-rest/cmd"

func main() {
	cmd.Execute()
}
