// Package main provides the gnsynth CLI application.
// gnsynth synthesizes environmental observations from many data sources.
package main

import "github.com/gnames/gnsynth/cmd"

func main() {
	cmd.Execute()
}
