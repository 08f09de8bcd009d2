package main

import "github.com/ThatOtherAndrew/shapes/cmd"

func main() {
	cmd.Execute()
}
