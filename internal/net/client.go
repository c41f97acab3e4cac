package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// Client talks to a table server.
type Client struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
}

// Dial connects to a server and returns the client with the opening state.
func Dial(ctx context.Context, addr string) (*Client, ServerMessage, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, ServerMessage{}, fmt.Errorf("connect: %w", err)
	}
	c := &Client{conn: conn, enc: json.NewEncoder(conn), dec: json.NewDecoder(conn)}
	var hello ServerMessage
	if err := c.dec.Decode(&hello); err != nil {
		conn.Close()
		return nil, ServerMessage{}, fmt.Errorf("read greeting: %w", err)
	}
	if hello.Type == MsgError {
		conn.Close()
		return nil, hello, fmt.Errorf("server: %s", hello.Error)
	}
	return c, hello, nil
}

// Do sends msg and waits for the reply.
func (c *Client) Do(msg ClientMessage) (ServerMessage, error) {
	if err := c.enc.Encode(msg); err != nil {
		return ServerMessage{}, fmt.Errorf("send %s: %w", msg.Type, err)
	}
	var resp ServerMessage
	if err := c.dec.Decode(&resp); err != nil {
		return ServerMessage{}, fmt.Errorf("read reply: %w", err)
	}
	return resp, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Connect dials addr and runs the REPL on in/out until "quit" or EOF.
func Connect(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	c, hello, err := Dial(ctx, addr)
	if err != nil {
		return err
	}
	defer c.Close()

	fmt.Fprintln(out, "Connected! Type 'help' for commands.")
	renderState(out, hello.State)
	return c.RunREPL(ctx, in, out)
}

// RunREPL reads commands from in, sends them and renders the replies.
func (c *Client) RunREPL(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if isEOF(err) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			printHelp(out)
			continue
		}

		msg, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		resp, err := c.Do(msg)
		if err != nil {
			return err
		}
		render(out, resp)
	}
}

// ParseCommand turns a REPL line into a client message.
func ParseCommand(line string) (ClientMessage, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(verb) {
	case "play", "p":
		return ClientMessage{Type: MsgEvaluate, Cards: rest}, nil
	case "discard", "d":
		idx, err := ParseIndices(rest)
		if err != nil {
			return ClientMessage{}, err
		}
		// the REPL numbers held cards from 1
		for i := range idx {
			idx[i]--
		}
		return ClientMessage{Type: MsgDiscard, Indices: idx}, nil
	case "add":
		return ClientMessage{Type: MsgAddAgent, Agent: rest}, nil
	case "remove", "rm":
		return ClientMessage{Type: MsgRemoveAgent, Agent: rest}, nil
	case "boss":
		return ClientMessage{Type: MsgSetBoss, Boss: rest}, nil
	case "upgrade", "up":
		cat, n := rest, 1
		if i := strings.LastIndexByte(rest, ' '); i >= 0 {
			if v, err := strconv.Atoi(rest[i+1:]); err == nil {
				cat, n = rest[:i], v
			}
		}
		return ClientMessage{Type: MsgUpgrade, Category: cat, Levels: n}, nil
	case "money", "hands", "discards", "seed":
		v, err := strconv.Atoi(rest)
		if err != nil {
			return ClientMessage{}, fmt.Errorf("%s needs a number", verb)
		}
		msg := ClientMessage{Type: MsgSetState}
		switch strings.ToLower(verb) {
		case "money":
			msg.Money = &v
		case "hands":
			msg.Hands = &v
		case "discards":
			msg.Discards = &v
		case "seed":
			if v < 0 {
				return ClientMessage{}, errors.New("seed must not be negative")
			}
			s := uint64(v)
			msg.Seed = &s
		}
		return msg, nil
	case "held":
		return ClientMessage{Type: MsgSetState, Held: &rest}, nil
	case "end":
		return ClientMessage{Type: MsgEndRound}, nil
	case "state", "s":
		return ClientMessage{Type: MsgState}, nil
	}
	return ClientMessage{}, fmt.Errorf("unknown command %q (try 'help')", verb)
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  play CARDS          score a hand, e.g. play 7h 7s:glass Kd")
	fmt.Fprintln(out, "  discard N...        discard held cards by position (from 1)")
	fmt.Fprintln(out, "  add NAME            acquire an agent")
	fmt.Fprintln(out, "  remove SLOT|ID      remove an agent")
	fmt.Fprintln(out, "  boss NAME           start a blind under a boss (or 'none')")
	fmt.Fprintln(out, "  upgrade CATEGORY [N]")
	fmt.Fprintln(out, "  money|hands|discards|seed N")
	fmt.Fprintln(out, "  held CARDS          replace the held hand")
	fmt.Fprintln(out, "  end                 end the round")
	fmt.Fprintln(out, "  state               show the table")
	fmt.Fprintln(out, "  quit")
}

// --- Rendering ---

func render(out io.Writer, msg ServerMessage) {
	for _, ev := range msg.Events {
		renderEvent(out, ev)
	}
	switch msg.Type {
	case MsgError:
		fmt.Fprintf(out, "✗ %s\n", msg.Error)
		return
	case MsgResult:
		renderResult(out, msg.Result)
	}
	for _, a := range msg.Expired {
		fmt.Fprintf(out, "  %s is gone\n", a.Name)
	}
	renderState(out, msg.State)
}

func renderEvent(out io.Writer, ev EventView) {
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 13 {
		phase += " "
	}
	fmt.Fprintf(out, "H%-2d %s| %s\n", ev.Hand, phase, ev.Details)
}

func renderResult(out io.Writer, r *ResultView) {
	if r == nil {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════")
	fmt.Fprintf(out, "  %s (lvl.%d)  %s\n", r.Category, r.Level, strings.Join(r.Scoring, " "))
	fmt.Fprintf(out, "  %d chips × %g mult × %g = %d\n", r.Chips, r.Mult, r.Factor, r.Score)
	fmt.Fprintln(out, "═══════════════════════════════════")
}

func renderState(out io.Writer, sv *StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintf(out, "Round %d | Boss: %s | $%d | Hands %d | Discards %d\n",
		sv.Round, sv.Boss, sv.Money, sv.HandsRemaining, sv.DiscardsRemaining)
	if len(sv.Agents) > 0 {
		fmt.Fprint(out, "Agents: ")
		for _, a := range sv.Agents {
			fmt.Fprintf(out, "[%d] %s  ", a.Slot, a.Name)
		}
		fmt.Fprintln(out)
	}
	if len(sv.Held) > 0 {
		fmt.Fprint(out, "Held: ")
		for i, c := range sv.Held {
			fmt.Fprintf(out, "[%d] %s  ", i+1, c)
		}
		fmt.Fprintln(out)
	}
}
