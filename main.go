package main

import "github.com/paylens/payreport/cmd"

func main() {
	cmd.Execute()
}
