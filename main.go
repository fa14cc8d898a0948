package main

import "github.com/mielsense/nowplaying/cmd"

func main() {
	cmd.Execute()
}
