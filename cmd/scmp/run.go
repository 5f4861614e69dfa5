//go:build linux

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zqzqsb/seccomp/pkg/seccomp"
	"github.com/zqzqsb/seccomp/pkg/seccomp/native"
	"github.com/zqzqsb/seccomp/pkg/seccomp/profile"
	"golang.org/x/sys/unix"
)

var useNative bool

var runCmd = &cobra.Command{
	Use:   "run <profile> -- <command> [args...]",
	Short: "Run a command under a profile",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(args[0])
		if err != nil {
			return err
		}
		bin, err := exec.LookPath(args[1])
		if err != nil {
			return err
		}

		opts := []seccomp.Option{seccomp.WithLogger(log.NewEntry(log.StandardLogger()))}
		if useNative {
			if !native.Available {
				return errors.New("built without libseccomp, rebuild with -tags libseccomp")
			}
			opts = append(opts, seccomp.WithFacility(native.New()))
		}

		c, err := profile.NewContext(p, opts...)
		if err != nil {
			return err
		}
		defer c.Release()

		log.WithFields(log.Fields{
			"profile": args[0],
			"command": bin,
		}).Info("loading policy")
		if err := c.Load(); err != nil {
			return err
		}
		// execve may itself be filtered, report without logging
		if err := unix.Exec(bin, args[1:], os.Environ()); err != nil {
			return fmt.Errorf("exec %s: %w", bin, err)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().SetInterspersed(false)
	runCmd.Flags().BoolVar(&useNative, "native", false, "Use the C libseccomp library")
	rootCmd.AddCommand(runCmd)
}
