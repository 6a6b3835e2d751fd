/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/race-results-hub/cmd"

func main() {
	cmd.Execute()
}
