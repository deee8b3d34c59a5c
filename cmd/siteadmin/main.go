package main

import "site-admin/internal/cli"

func main() {
	cli.Execute()
}
