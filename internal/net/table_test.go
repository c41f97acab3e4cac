package net

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/peterkuimelis/chipsmult/internal/game"
	"github.com/rs/zerolog"
)

func newTestTable(t *testing.T, l game.Loadout) *Table {
	t.Helper()
	tbl, err := NewTable(l, zerolog.Nop(), 1)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func intp(n int) *int { return &n }

func TestTableEvaluate(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t", Agents: []string{"Joker"}})
	resp := tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s 2d"})
	if resp.Type != MsgResult {
		t.Fatalf("type = %s (%s)", resp.Type, resp.Error)
	}
	r := resp.Result
	if r.Category != "Pair" || r.Chips != 24 || r.Mult != 6 || r.Score != 144 {
		t.Errorf("result = %+v", r)
	}
	if len(resp.Events) == 0 || resp.Events[len(resp.Events)-1].Type != "Scored" {
		t.Error("expected the hand's events ending with Scored")
	}
	if resp.State.HandsPlayed != 1 || resp.State.HandsRemaining != game.DefaultHands-1 {
		t.Errorf("state = %+v", resp.State)
	}

	// events are drained per request
	again := tbl.Handle(ClientMessage{Type: MsgState})
	if len(again.Events) != 0 {
		t.Errorf("state request returned %d stale events", len(again.Events))
	}
}

func TestTableErrors(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t", Boss: "The Eye"})
	tests := []struct {
		msg  ClientMessage
		code string
	}{
		{ClientMessage{Type: MsgEvaluate, Cards: "7h:down"}, CodeNoCards},
		{ClientMessage{Type: MsgEvaluate, Cards: "2h 3h 4h 5h 6h 7h"}, CodeTooManyCards},
		{ClientMessage{Type: MsgEvaluate, Cards: "7x"}, CodeBadRequest},
		{ClientMessage{Type: MsgAddAgent, Agent: "Nobody"}, CodeBadRequest},
		{ClientMessage{Type: MsgRemoveAgent, Agent: "3"}, CodeBadRequest},
		{ClientMessage{Type: MsgUpgrade, Category: "six of a kind"}, CodeBadRequest},
		{ClientMessage{Type: "shuffle"}, CodeBadRequest},
	}
	for _, tt := range tests {
		resp := tbl.Handle(tt.msg)
		if resp.Type != MsgError || resp.Code != tt.code {
			t.Errorf("%+v: got %s/%s, want error %s", tt.msg, resp.Type, resp.Code, tt.code)
		}
	}

	if resp := tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"}); resp.Type != MsgResult {
		t.Fatalf("first pair: %s", resp.Error)
	}
	resp := tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "9h 9s"})
	if resp.Code != CodeConstraint {
		t.Errorf("repeat pair under The Eye: code %q", resp.Code)
	}
	if len(resp.Events) == 0 || resp.Events[len(resp.Events)-1].Type != "Rejected" {
		t.Error("rejection should be reported with its events")
	}
}

func TestTableAgentsAndLevels(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t"})
	resp := tbl.Handle(ClientMessage{Type: MsgAddAgent, Agent: "Green Joker"})
	if len(resp.State.Agents) != 1 || resp.State.Agents[0].Slot != 1 {
		t.Fatalf("agents = %+v", resp.State.Agents)
	}
	id := resp.State.Agents[0].ID

	tbl.Handle(ClientMessage{Type: MsgUpgrade, Category: "pair", Levels: 2})
	resp = tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"})
	if resp.Result.Level != 3 || resp.Result.Mult != 7+1 {
		t.Errorf("result = %+v", resp.Result)
	}
	if got := resp.State.Agents[0].Counters["mult"]; got != 1 {
		t.Errorf("Green Joker counter = %d", got)
	}

	resp = tbl.Handle(ClientMessage{Type: MsgRemoveAgent, Agent: id})
	if resp.Type == MsgError || len(resp.State.Agents) != 0 {
		t.Errorf("remove by id: %+v", resp)
	}
}

func TestTableDiscardAndSetState(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t"})
	held := "2c 3c Kh"
	resp := tbl.Handle(ClientMessage{Type: MsgSetState, Held: &held, Money: intp(9), Discards: intp(1)})
	if resp.State.Money != 9 || len(resp.State.Held) != 3 {
		t.Fatalf("state = %+v", resp.State)
	}
	resp = tbl.Handle(ClientMessage{Type: MsgDiscard, Indices: []int{0, 2}})
	if resp.Type == MsgError {
		t.Fatal(resp.Error)
	}
	if strings.Join(resp.State.Held, " ") != "3c" || resp.State.DiscardsRemaining != 0 {
		t.Errorf("after discard: %+v", resp.State)
	}
	if resp = tbl.Handle(ClientMessage{Type: MsgDiscard, Indices: []int{0}}); resp.Code != CodeNoDiscards {
		t.Errorf("code = %q, want no_discards", resp.Code)
	}
	if resp = tbl.Handle(ClientMessage{Type: MsgDiscard, Indices: []int{5}}); resp.Type != MsgError {
		t.Error("out of range discard should fail")
	}
}

func TestTableEndRound(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t", Boss: "The Water", Agents: []string{"Popcorn"}})
	if st := tbl.State(); st.DiscardsRemaining != 0 {
		t.Errorf("The Water should start with no discards, got %d", st.DiscardsRemaining)
	}
	var resp ServerMessage
	for i := 0; i < 5; i++ {
		resp = tbl.Handle(ClientMessage{Type: MsgEndRound})
	}
	if len(resp.Expired) != 1 || resp.Expired[0].Name != "Popcorn" {
		t.Errorf("expired = %+v", resp.Expired)
	}
	if resp.State.Round != 6 {
		t.Errorf("round = %d, want 6", resp.State.Round)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want ClientMessage
	}{
		{"play 7h 7s", ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"}},
		{"discard 1 3", ClientMessage{Type: MsgDiscard, Indices: []int{0, 2}}},
		{"add Green Joker", ClientMessage{Type: MsgAddAgent, Agent: "Green Joker"}},
		{"upgrade two pair 3", ClientMessage{Type: MsgUpgrade, Category: "two pair", Levels: 3}},
		{"upgrade flush", ClientMessage{Type: MsgUpgrade, Category: "flush", Levels: 1}},
		{"boss The Hook", ClientMessage{Type: MsgSetBoss, Boss: "The Hook"}},
		{"end", ClientMessage{Type: MsgEndRound}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		if err != nil {
			t.Fatalf("ParseCommand(%q): %v", tt.line, err)
		}
		if got.Type != tt.want.Type || got.Cards != tt.want.Cards || got.Agent != tt.want.Agent ||
			got.Category != tt.want.Category || got.Levels != tt.want.Levels || got.Boss != tt.want.Boss ||
			len(got.Indices) != len(tt.want.Indices) {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
	for _, bad := range []string{"fold", "money lots", "discard x"} {
		if _, err := ParseCommand(bad); err == nil {
			t.Errorf("ParseCommand(%q) should fail", bad)
		}
	}
}

func TestServerRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := &Server{Loadout: game.Loadout{Name: "t", Agents: []string{"Joker"}}, Logger: zerolog.Nop()}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	c, hello, err := Dial(ctx, ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	if hello.State == nil || len(hello.State.Agents) != 1 {
		t.Fatalf("greeting = %+v", hello)
	}

	var out bytes.Buffer
	in := strings.NewReader("play 2h 5h 9h Jh Kh\nstate\nquit\n")
	if err := c.RunREPL(ctx, in, &out); err != nil {
		t.Fatal(err)
	}
	c.Close()
	if !strings.Contains(out.String(), "= 568") {
		t.Errorf("REPL output missing the flush score:\n%s", out.String())
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Serve: %v", err)
	}
}

func TestBossViewsListDealingRules(t *testing.T) {
	want := map[string]string{
		"The Pillar":  "selection chosen at random",
		"The House":   "first deal is one card",
		"The Ox":      "leftmost card face down",
		"The Manacle": "hand size -1",
	}
	for _, b := range BossViews() {
		rule, ok := want[b.Name]
		if !ok {
			continue
		}
		if len(b.Dealing) != 1 || b.Dealing[0] != rule {
			t.Errorf("%s dealing = %v, want [%s]", b.Name, b.Dealing, rule)
		}
		delete(want, b.Name)
	}
	if len(want) != 0 {
		t.Errorf("bosses missing from BossViews: %v", want)
	}
}

func TestTablePlayedCardsKeepPermanentChips(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t", Agents: []string{"Hiker"}})
	resp := tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"})
	if resp.Type != MsgResult || resp.Result.Chips != 24 {
		t.Fatalf("first hand = %+v (%s)", resp.Result, resp.Error)
	}
	resp = tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"})
	if resp.Result.Chips != 24+10 {
		t.Errorf("second hand chips = %d, want 34", resp.Result.Chips)
	}

	// a rejected hand leaves the deck alone
	tbl.Handle(ClientMessage{Type: MsgSetBoss, Boss: "The Mouth"})
	tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "2c"})
	if resp = tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"}); resp.Type != MsgError {
		t.Fatalf("The Mouth should reject a pair after a high card, got %+v", resp.Result)
	}
	tbl.Handle(ClientMessage{Type: MsgSetBoss, Boss: "none"})
	resp = tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"})
	if resp.Result.Chips != 24+20 {
		t.Errorf("third hand chips = %d, want 44", resp.Result.Chips)
	}
}

func TestTableDealsHeldUnderBoss(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t", Boss: "The Ox", Agents: []string{"Baron"}})
	held := "Kh Kd"
	resp := tbl.Handle(ClientMessage{Type: MsgSetState, Held: &held})
	if strings.Join(resp.State.Held, " ") != "Kh:down Kd" {
		t.Fatalf("held = %v", resp.State.Held)
	}
	resp = tbl.Handle(ClientMessage{Type: MsgEvaluate, Cards: "7h 7s"})
	if resp.Result.Factor != 1.5 {
		t.Errorf("Baron factor = %g, want 1.5 from the face-up king", resp.Result.Factor)
	}
}

func TestTableUpgradeBounds(t *testing.T) {
	tbl := newTestTable(t, game.Loadout{Name: "t"})
	for _, n := range []int{-1, MaxUpgradeLevels + 1, 1_000_000_000_000} {
		resp := tbl.Handle(ClientMessage{Type: MsgUpgrade, Category: "pair", Levels: n})
		if resp.Type != MsgError || resp.Code != CodeBadRequest {
			t.Errorf("levels %d: got %+v", n, resp)
		}
	}
	resp := tbl.Handle(ClientMessage{Type: MsgUpgrade, Category: "pair", Levels: MaxUpgradeLevels})
	if resp.Type == MsgError {
		t.Fatal(resp.Error)
	}
}
