package score

import (
	"os"
	"strconv"
)

// Environment variables carrying the player and game identity when the
// arcade is launched from the web platform.
const (
	EnvUserID = "GAME_USER_ID"
	EnvGameID = "GAME_ID"
)

// Identity names the player and game row on the web service side.
type Identity struct {
	UserID int
	GameID int
}

// IdentityFromEnv reads the identity from the environment. It reports false
// when either variable is absent or not numeric, in which case remote
// submission is skipped silently.
func IdentityFromEnv() (Identity, bool) {
	uid, err := strconv.Atoi(os.Getenv(EnvUserID))
	if err != nil {
		return Identity{}, false
	}
	gid, err := strconv.Atoi(os.Getenv(EnvGameID))
	if err != nil {
		return Identity{}, false
	}
	return Identity{UserID: uid, GameID: gid}, true
}
