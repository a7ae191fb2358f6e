package main

import (
	"fmt"
	"os"

	"github.com/dsgen/dsgen/cmd"
	"github.com/dsgen/dsgen/metadata"
)

var cli *cmd.CommandLine

func init() {
	cli = cmd.NewCLI()
	cli.AllowPlugins("dsgen-gen-")

	// Register DataStore model metadata generator
	cli.RegisterGenerator(new(metadata.Generator),
		"model_out",
		"model_opt",
		"Generate DataStore model metadata from a GraphQL schema.")
}

func main() {
	if err := cli.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
