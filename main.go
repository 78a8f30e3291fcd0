package main

import "github.com/keurfonluu/toughio-sub000/cmd"

func main() {
	cmd.Execute()
}
