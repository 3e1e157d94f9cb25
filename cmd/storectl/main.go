package main

import "github.com/ariefcatur/go-storefront/internal/cli"

func main() {
	cli.Execute()
}
