// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the API response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [KEY]",
	Short: "Delete one cached response, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		w := cmd.OutOrStdout()
		if len(args) == 1 {
			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(w, "cleared: %s\n", args[0])
			return nil
		}
		n, err := a.store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "cleared %d cached responses\n", n)
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cached responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.store.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired responses\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd, cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
