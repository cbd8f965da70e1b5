package main

import "github.com/epilog-dev/epilog/cmd"

func main() {
	cmd.Execute()
}
