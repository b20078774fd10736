package main

import "github.com/guardforce/workforce-management/cmd"

func main() {
	cmd.Execute()
}
