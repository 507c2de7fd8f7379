package identity

import (
	"os"
	"os/user"
)

// fallbackID is used when the OS user cannot be resolved.
const fallbackID = "local"

// LearnerID returns the stable identifier that namespaces persisted notes.
// GRASP_LEARNER takes priority so shared machines can keep separate note
// collections; otherwise the OS username is used.
func LearnerID() string {
	if id := os.Getenv("GRASP_LEARNER"); id != "" {
		return id
	}
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return fallbackID
	}
	return u.Username
}
