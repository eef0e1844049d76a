package main

import "deploy-launcher/cmd"

func main() {
	cmd.Execute()
}
