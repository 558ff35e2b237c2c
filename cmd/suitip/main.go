package main

import "github.com/OKaluzny/sui-tips/internal/cli"

func main() {
	cli.Execute()
}
