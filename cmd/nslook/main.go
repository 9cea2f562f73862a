// Command `nslook` performs a single DNS lookup over UDP and prints the
// IPv4 addresses found in the response.
//
// Usage:
//
//	nslook <domain> [record_type] [dns_server]
//	nslook config init
//	nslook version
//
// Examples:
//
//	nslook example.com                - A lookup via the system resolver
//	nslook example.com MX             - MX query, addresses from the answer
//	nslook example.com A 9.9.9.9      - A lookup via 9.9.9.9
//
// The system resolver is the first nameserver in /etc/resolv.conf. Record
// types other than A, AAAA and MX are sent as A queries.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lc/nslook/internal/buildinfo"
	"github.com/lc/nslook/internal/config"
	"github.com/lc/nslook/internal/log"
	"github.com/lc/nslook/internal/lookup"
)

func main() {
	provider := config.New()
	cfg, err := provider.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var (
		timeout     time.Duration
		allSections bool
		table       bool
		verbose     bool
		resolvConf  string
	)

	root := &cobra.Command{
		Use:   "nslook <domain> [record_type] [dns_server]",
		Short: "Look up the addresses of a domain",
		Long: `nslook sends one DNS query over UDP and prints the IPv4 addresses
found in the response.

record_type is A, AAAA or MX (default A); anything else is sent as an A
query. dns_server defaults to the first nameserver in /etc/resolv.conf.`,
		Example:      "nslook example.com MX 1.1.1.1",
		Args:         cobra.RangeArgs(1, 3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetDebug()
			}

			if timeout <= 0 {
				return fmt.Errorf("timeout must be positive, got %s", timeout)
			}

			opts := []lookup.Opt{lookup.WithResolvConf(resolvConf)}
			if cfg.Resolver.Server != "" {
				opts = append(opts, lookup.WithServer(cfg.Resolver.Server))
			}
			if allSections || cfg.Query.AllSections {
				opts = append(opts, lookup.WithAllSections())
			}
			cli := lookup.New(timeout, opts...)

			req := lookup.Request{Domain: args[0], RecordType: cfg.Query.RecordType}
			if len(args) > 1 {
				req.RecordType = args[1]
			}
			if len(args) > 2 {
				req.Server = args[2]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := cli.Lookup(ctx, req)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, table)
		},
	}
	root.Flags().DurationVarP(&timeout, "timeout", "t", cfg.Resolver.Timeout, "how long to wait for the response")
	root.Flags().BoolVar(&allSections, "all-sections", false, "also report addresses from the authority and additional sections")
	root.Flags().BoolVar(&table, "table", false, "print the addresses as a table")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log query details to stderr")
	root.Flags().StringVar(&resolvConf, "resolv-conf", cfg.Resolver.ResolvConf, "resolver configuration to discover the DNS server from")

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("version: %s\n", buildinfo.Version)
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		},
	}

	// ---- config command ----
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to ~/.nslook/config.yaml.
An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := provider.Init(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", provider.Path())
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	root.AddCommand(versionCmd, configCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
