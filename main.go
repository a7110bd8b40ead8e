package main

import "github.com/jsphweid/motifdex/cmd"

func main() {
	cmd.Execute()
}
