package main

import "docsorter/cmd/docsorter/cmd"

func main() {
	cmd.Execute()
}
