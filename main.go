package main

import "github.com/douhashi/labeler/cmd"

func main() {
	cmd.Execute()
}
