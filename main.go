package main

import "github.com/Tiliavir/dietwatch/cmd"

func main() {
	cmd.Execute()
}
