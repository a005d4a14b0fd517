package main

import "codesage/src/handler/cli"

func main() {
	cli.Run()
}
