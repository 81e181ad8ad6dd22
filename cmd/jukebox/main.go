package main

import "github.com/tsijukebox/jukebox/internal/cli"

func main() {
	cli.Execute()
}
