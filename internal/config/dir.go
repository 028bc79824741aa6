package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "jnldoc"

// Dir returns the user-level jnldoc configuration directory, or "" when no
// home directory can be determined.
//
// Resolution:
//   - $JNLDOC_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/jnldoc if set, on any platform
//   - %AppData%/jnldoc on Windows
//   - ~/.config/jnldoc elsewhere
func Dir() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// UserFile returns the path of the user-level config file, or "" when Dir
// cannot be resolved.
func UserFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yml")
}
