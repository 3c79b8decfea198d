package main

import "codeprompt/cmd"

func main() {
	cmd.Execute()
}
