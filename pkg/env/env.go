// Package env keeps names of environment variables with special significance to
// elvcalc.
package env

// Environment variables with special significance to elvcalc.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	ELVCALC_CONFIG          = "ELVCALC_CONFIG"
	ELVCALC_TEST_TIME_SCALE = "ELVCALC_TEST_TIME_SCALE"
	HOME                    = "HOME"
	LANG                    = "LANG"
	LC_ALL                  = "LC_ALL"
	LC_NUMERIC              = "LC_NUMERIC"
	XDG_CONFIG_HOME         = "XDG_CONFIG_HOME"
)
