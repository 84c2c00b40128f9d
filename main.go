package main

import "sheetgen/cmd"

func main() {
	cmd.Execute()
}
