package main

import "github.com/manifest-network/ledgerdash/cmd/ledgerdash"

func main() {
	ledgerdash.Execute()
}
