//go:build linux

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zqzqsb/seccomp/pkg/seccomp/libseccomp"
)

var syscallsCmd = &cobra.Command{
	Use:   "syscalls [filter]",
	Short: "List the syscalls of the native architecture",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := libseccomp.Syscalls()
		if err != nil {
			return err
		}
		nrs := make([]int, 0, len(table))
		for nr, name := range table {
			if len(args) == 1 && !strings.Contains(name, args[0]) {
				continue
			}
			nrs = append(nrs, nr)
		}
		slices.Sort(nrs)

		out := cmd.OutOrStdout()
		for _, nr := range nrs {
			fmt.Fprintf(out, "%4d %s\n", nr, table[nr])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syscallsCmd)
}
