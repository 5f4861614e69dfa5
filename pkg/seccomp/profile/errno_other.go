//go:build !unix

package profile

func errnoByName(string) (int32, bool) {
	return 0, false
}
