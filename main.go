package main

import "github.com/fastbayes/regress/cmd"

func main() {
	cmd.Execute()
}
