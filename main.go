package main

import "github.com/KaramelBytes/corrlens-cli/cmd"

func main() {
	cmd.Execute()
}
