package main

import "github.com/stuchat/backend/cmd"

func main() {
	cmd.Execute()
}
