package main

import "github.com/rustyeddy/tradeledger/internal/cli"

func main() {
	cli.Execute()
}
