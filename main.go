package main

import "assetdesk/cmd"

func main() {
	cmd.Execute()
}
