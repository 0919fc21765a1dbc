package testutil

import "os"

// Setenv sets the value of an environment variable for the duration of a test.
// It returns value.
func Setenv(c Cleanuper, name, value string) string {
	oldValue, existed := os.LookupEnv(name)
	os.Setenv(name, value)
	c.Cleanup(func() {
		if existed {
			os.Setenv(name, oldValue)
		} else {
			os.Unsetenv(name)
		}
	})
	return value
}
