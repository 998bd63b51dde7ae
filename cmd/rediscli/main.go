// rediscli is a small command-line client and benchmark tool for servers
// speaking the Redis text protocol.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"redisclient"
)

var (
	addr    string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "rediscli",
	Short:         "A command-line client for the Redis text protocol",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", redisclient.DefaultAddr, "server address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", redisclient.DefaultTimeout, "per-call timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log protocol exchanges")

	rootCmd.AddCommand(pingCmd, getCmd, setCmd, delCmd, keysCmd, infoCmd, benchCmd)
}

func connect() (*redisclient.Client, error) {
	opts := []redisclient.Option{redisclient.WithTimeout(timeout)}
	if verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
		opts = append(opts, redisclient.WithLogger(logger))
	}
	return redisclient.Dial(addr, opts...)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the server is responding",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Ping(); err != nil {
			return err
		}
		fmt.Println("PONG")
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Fetch the value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		val, found, err := c.Get(args[0])
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("(nil)")
			return nil
		}
		fmt.Println(string(val))
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value under a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Set(args[0], []byte(args[1])); err != nil {
			return err
		}
		fmt.Println("OK")
		return nil
	},
}

var delCmd = &cobra.Command{
	Use:   "del <key>",
	Short: "Remove a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		removed, err := c.Del(args[0])
		if err != nil {
			return err
		}
		if removed {
			fmt.Println("1")
		} else {
			fmt.Println("0")
		}
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys [pattern]",
	Short: "List keys matching a pattern (default *)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}

		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		keys, err := c.Keys(pattern)
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the server's INFO report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		info, err := c.Info()
		if err != nil {
			return err
		}
		fmt.Printf("version:  %s\n", info.Version)
		fmt.Printf("role:     %s\n", info.Role)
		fmt.Printf("uptime:   %ds\n", info.UptimeSeconds)
		fmt.Printf("clients:  %d\n", info.ConnectedClients)
		fmt.Printf("memory:   %d\n", info.UsedMemory)
		fmt.Printf("commands: %d\n", info.TotalCommandsProcessed)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
