package main

import "i18n-sync/cmd"

func main() {
	cmd.Execute()
}
