package main

import (
	"fmt"

	fks "github.com/joaquintides/perfect-set"
	"github.com/spf13/cobra"
)

var findOptions struct {
	lambda uint
}

var cmdFind = &cobra.Command{
	Use:   "find FILE KEY",
	Short: "Build a perfect-hash set from FILE and look up KEY",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(args[0], args[1])
	},
}

func init() {
	cmdRoot.AddCommand(cmdFind)
	cmdFind.Flags().UintVar(&findOptions.lambda, "lambda", 4, "load parameter")
}

func runFind(path, key string) error {
	keys, err := readLines(path)
	if err != nil {
		return err
	}

	set, err := fks.Build(keys, fks.NewStringHasher(), fks.WithLambda[string](findOptions.lambda))
	if err != nil {
		return err
	}

	if _, ok := set.Find(key); ok {
		fmt.Printf("hit: %q\n", key)
		return nil
	}
	fmt.Printf("miss: %q\n", key)
	return nil
}
