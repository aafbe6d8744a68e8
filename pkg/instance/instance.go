package instance

import "os"

var idVars = []string{"INSTANCE_ID", "DYNO", "HOSTNAME"}

// GetID identifies the running process in logs and lock values.
func GetID() string {
	for _, key := range idVars {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
