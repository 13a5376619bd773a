package main

import "github.com/AzielCF/az-courier/cmd"

func main() {
	cmd.Execute()
}
