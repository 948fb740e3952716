package pkg

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/blockterm/pkg/config"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
)

type Server struct {
	*ssh.Server
	client string
	logger *zap.Logger

	players map[*Player]bool
	mu      sync.Mutex
}

// loadHostKey reads a PEM private key. An empty path means ~/.ssh/id_rsa.
func loadHostKey(keyPath string) (gossh.Signer, error) {
	if keyPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("server: find host key: %w", err)
		}
		keyPath = path.Join(homeDir, ".ssh", "id_rsa")
	}

	pem, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("server: read host key: %w", err)
	}

	signer, err := gossh.ParsePrivateKey(pem)
	if err != nil {
		return nil, fmt.Errorf("server: parse host key %s: %w", keyPath, err)
	}

	return signer, nil
}

func NewServer(cfg config.Server, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	signer, err := loadHostKey(cfg.HostKey)
	if err != nil {
		return nil, err
	}

	server := &Server{
		client:  cfg.Client,
		logger:  logger,
		players: make(map[*Player]bool),
	}

	server.Server = &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     server.sshHandle,
	}
	server.AddHostKey(signer)

	return server, nil
}

func (s *Server) join(p *Player) {
	s.mu.Lock()
	s.players[p] = true
	n := len(s.players)
	s.mu.Unlock()

	s.logger.Info("player joined", zap.Stringer("player", p), zap.Int("players", n))
}

func (s *Server) leave(p *Player) {
	s.mu.Lock()
	delete(s.players, p)
	n := len(s.players)
	s.mu.Unlock()

	s.logger.Info("player left", zap.Stringer("player", p), zap.Int("players", n))
}

// Players returns the nicknames of everyone connected, sorted.
func (s *Server) Players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	nicks := make([]string, 0, len(s.players))
	for p := range s.players {
		nicks = append(nicks, p.Nick)
	}
	sort.Strings(nicks)

	return nicks
}

func (s *Server) sshHandle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")

		sess.Exit(1)
		return
	}

	p := NewPlayer(sess, ptyReq.Term)
	s.join(p)
	defer s.leave(p)

	cmd := p.Command(sess, s.client)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		s.logger.Error("failed to start client", zap.Stringer("player", p), zap.Error(err))
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	if err := cmd.Wait(); err != nil {
		s.logger.Warn("client exited", zap.Stringer("player", p), zap.Error(err))
	}
}
