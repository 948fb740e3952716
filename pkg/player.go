package pkg

import (
	"fmt"
	"os/exec"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
)

// Users that get a generated nickname instead of their login.
var anonymousUsers = map[string]bool{
	"":          true,
	"anonymous": true,
	"guest":     true,
	"root":      true,
}

// Nick returns the nickname for an ssh login.
func Nick(user string) string {
	user = strings.TrimSpace(user)
	if anonymousUsers[strings.ToLower(user)] {
		return petname.Generate(2, "-")
	}
	return user
}

// StoreKey returns the best-score owner for a local login. Anonymous logins
// share the default record so a generated nickname never loses the best.
func StoreKey(user string) string {
	user = strings.TrimSpace(user)
	if anonymousUsers[strings.ToLower(user)] {
		return ""
	}
	return user
}

// Player is one ssh session running a game client.
type Player struct {
	Nick   string
	Term   string
	Remote string
}

func NewPlayer(s ssh.Session, term string) *Player {
	return &Player{
		Nick:   Nick(s.User()),
		Term:   term,
		Remote: s.RemoteAddr().String(),
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s@%s", p.Nick, p.Remote)
}

// Command builds the client process for this player.
func (p *Player) Command(s ssh.Session, binary string) *exec.Cmd {
	cmd := exec.CommandContext(s.Context(), binary, "--nick", p.Nick)
	cmd.Env = append(s.Environ(), fmt.Sprintf("TERM=%s", p.Term))
	return cmd
}
