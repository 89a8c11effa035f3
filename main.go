package main

import "github.com/frahmantamala/portfolio/cmd"

func main() {
	cmd.Execute()
}
