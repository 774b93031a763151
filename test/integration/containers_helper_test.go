package integration

import (
	"os"
	"path/filepath"
	"strconv"
)

// containersAvailable reports whether a Docker or Podman socket is
// reachable, so container-backed tests can skip cleanly elsewhere.
func containersAvailable() bool {
	if _, err := os.Stat("/var/run/docker.sock"); err == nil {
		return true
	}

	// Rootless podman exposes a per-user socket
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		if _, err := os.Stat(filepath.Join(runtimeDir, "podman", "podman.sock")); err == nil {
			return true
		}
		return false
	}
	if uid := os.Getuid(); uid > 0 {
		candidate := "/run/user/" + strconv.Itoa(uid) + "/podman/podman.sock"
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}
