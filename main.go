package main

import "github.com/Manu343726/simcheck/cmd"

func main() {
	cmd.Execute()
}
