package main

import "github.com/vnphone/staff-portal/cmd"

func main() {
	cmd.Execute()
}
