package main

import "github.com/julienstroheker/nc/cli/cmd"

func main() {
	cmd.Execute()
}
