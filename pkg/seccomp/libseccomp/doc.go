// Package libseccomp is a pure Go stand-in for the C libseccomp library.
//
// It accepts rules through the scmp.Facility contract, compiles them into a
// classic BPF program for the native architecture and installs the program
// with seccomp(2). Argument comparisons are evaluated on the full 64-bit
// value by comparing both 32-bit halves.
//
// Requires Linux >= 3.17 for SECCOMP_FILTER_FLAG_TSYNC.
package libseccomp
