package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var benchOps int

func init() {
	benchCmd.Flags().IntVarP(&benchOps, "ops", "n", 1000, "operations per round")
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run timed rounds of SET, GET, INCR and list operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		value := []byte("abcdefghijklmnopqrstuvwxyz")

		round("SET", benchOps, func(i int) error {
			return c.Set(fmt.Sprintf("bench:key:%d", i), value)
		})
		round("GET", benchOps, func(i int) error {
			_, _, err := c.Get(fmt.Sprintf("bench:key:%d", i))
			return err
		})
		round("INCR", benchOps, func(i int) error {
			_, err := c.Incr("bench:counter")
			return err
		})
		round("LPUSH", benchOps, func(i int) error {
			_, err := c.LPush("bench:list", value)
			return err
		})
		round("LRANGE 0 49", benchOps, func(i int) error {
			_, err := c.LRange("bench:list", 0, 49)
			return err
		})
		return nil
	},
}

func round(name string, ops int, op func(i int) error) {
	start := time.Now()
	for i := 0; i < ops; i++ {
		if err := op(i); err != nil {
			fmt.Printf("%-12s failed after %d ops: %v\n", name, i, err)
			return
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%-12s %6d ops in %8s  (%.0f ops/sec)\n",
		name, ops, elapsed.Round(time.Millisecond), float64(ops)/elapsed.Seconds())
}
