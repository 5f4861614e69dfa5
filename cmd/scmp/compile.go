//go:build linux

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zqzqsb/seccomp/pkg/seccomp"
	"github.com/zqzqsb/seccomp/pkg/seccomp/libseccomp"
	"github.com/zqzqsb/seccomp/pkg/seccomp/profile"
	"github.com/zqzqsb/seccomp/pkg/seccomp/scmp"
	"golang.org/x/net/bpf"
)

var dumpRaw bool

var checkCmd = &cobra.Command{
	Use:   "check <profile>",
	Short: "Validate a profile and compile it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, prog, err := compileProfile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d rules, %d instructions\n", args[0], len(p.Rules), len(prog))
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <profile>",
	Short: "Print the BPF program of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, prog, err := compileProfile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !dumpRaw {
			for i, ins := range prog {
				fmt.Fprintf(out, "%4d: %v\n", i, ins)
			}
			return nil
		}

		filter, err := libseccomp.ExportBPF(prog)
		if err != nil {
			return err
		}
		for _, f := range filter {
			fmt.Fprintf(out, "{ 0x%02x, %d, %d, 0x%08x },\n", f.Code, f.Jt, f.Jf, f.K)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpRaw, "raw", false, "Print struct sock_filter entries instead of assembly")
	rootCmd.AddCommand(checkCmd, dumpCmd)
}

// recorder remembers the handle of the filter it allocates so the compiled
// program can be read back.
type recorder struct {
	*libseccomp.Facility
	handle scmp.Handle
}

func (r *recorder) Init(def uint32) (scmp.Handle, error) {
	h, err := r.Facility.Init(def)
	r.handle = h
	return h, err
}

func compileProfile(path string) (*profile.Profile, []bpf.Instruction, error) {
	p, err := profile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("profile", path).Debug("compiling")

	rec := &recorder{Facility: libseccomp.New()}
	c, err := profile.NewContext(p, seccomp.WithFacility(rec), seccomp.WithLogger(log.NewEntry(log.StandardLogger())))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	defer c.Release()

	prog, err := rec.Program(rec.handle)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, prog, nil
}
