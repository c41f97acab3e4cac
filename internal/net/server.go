package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/chipsmult/internal/game"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Server hosts scoring tables over TCP. Every connection gets its own
// table built from the same loadout.
type Server struct {
	Loadout game.Loadout
	Port    string
	Seed    uint64
	Logger  zerolog.Logger
}

// Run listens on the configured port and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	zlog.Info().Str("addr", ln.Addr().String()).Str("loadout", s.Loadout.Name).Msg("waiting for players")
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. ln is closed on
// return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.serveConn(ctx, conn); err != nil {
				zlog.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("connection closed")
			}
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) error {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	remote := conn.RemoteAddr().String()
	zlog.Info().Str("remote", remote).Msg("player connected")

	enc := json.NewEncoder(conn)
	t, err := NewTable(s.Loadout, s.Logger.With().Str("remote", remote).Logger(), s.Seed)
	if err != nil {
		_ = enc.Encode(errorMessage(err, nil))
		return err
	}
	// greet with the opening state
	if err := enc.Encode(ServerMessage{Type: MsgState, State: t.State()}); err != nil {
		return fmt.Errorf("send state: %w", err)
	}

	dec := json.NewDecoder(conn)
	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil || isEOF(err) {
				zlog.Info().Str("remote", remote).Msg("player left")
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		if err := enc.Encode(t.Handle(msg)); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
}
