//go:build linux

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
	"github.com/zqzqsb/seccomp/pkg/seccomp/libseccomp"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeProfile(t *testing.T, doc string) string {
	t.Helper()
	if _, err := libseccomp.Syscalls(); err != nil {
		t.Skip(err)
	}
	path := filepath.Join(t.TempDir(), "profile.yaml")
	must.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

const profileDoc = `
defaultAction: allow
rules:
  - syscall: getpid
    action: errno(EPERM)
    args:
      - {index: 0, op: "==", value: 1000}
`

func TestCheck(t *testing.T) {
	path := writeProfile(t, profileDoc)
	out, err := execute(t, "check", path)
	must.NoError(t, err)
	must.StrContains(t, out, "ok, 1 rules")
}

func TestCheck_invalid(t *testing.T) {
	path := writeProfile(t, "defaultAction: maybe\n")
	_, err := execute(t, "check", path)
	must.ErrorContains(t, err, `unknown action "maybe"`)
}

func TestDump(t *testing.T) {
	path := writeProfile(t, profileDoc)

	out, err := execute(t, "dump", path)
	must.NoError(t, err)
	must.StrContains(t, out, "   0: ld [4]")

	dumpRaw = true
	defer func() { dumpRaw = false }()
	out, err = execute(t, "dump", "--raw", path)
	must.NoError(t, err)
	must.StrHasPrefix(t, "{ 0x20, 0, 0, 0x00000004 },", out)
}

func TestSyscalls(t *testing.T) {
	if _, err := libseccomp.Syscalls(); err != nil {
		t.Skip(err)
	}
	out, err := execute(t, "syscalls", "getpid")
	must.NoError(t, err)
	must.StrContains(t, out, " getpid\n")
}

func TestLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "syscalls")
	must.ErrorContains(t, err, "invalid log level")
	logLevel = "info"
}
