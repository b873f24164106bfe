package main

import "strfilter/cmd"

func main() {
	cmd.Execute()
}
