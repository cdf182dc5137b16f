package main

import (
	root "github.com/b-garbacz/zkp-merlin-sgx/cmd"
)

func main() {
	root.Execute()
}
