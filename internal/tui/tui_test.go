package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"strategyforge/internal/game"
	"strategyforge/internal/scenario"
)

type fakeProgram struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeProgram) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeProgram) received() []tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tea.Msg(nil), f.msgs...)
}

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	rec := game.TurnRecord{Turn: 1, Agent: game.AgentBlueCommander, Summary: "Hold position.", Timestamp: time.Unix(0, 0).UTC()}
	if err := w.Write(rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := p.msgs[0].(transcriptMsg); !ok {
		t.Fatalf("expected transcriptMsg, got %T", p.msgs[0])
	}
	row := game.ScoreRow{Turn: 1, Side: "blue", Score: game.Score{Overall: 7}, Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteScore(row); err != nil {
		t.Fatalf("score: %v", err)
	}
	if _, ok := p.msgs[1].(scoreMsg); !ok {
		t.Fatalf("expected scoreMsg, got %T", p.msgs[1])
	}
	w.Done(nil)
	if _, ok := p.msgs[2].(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", p.msgs[2])
	}
	if err := w.WriteBatch([]game.TurnRecord{{Turn: 2}, {Turn: 3}}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(p.msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(p.msgs))
	}
}

func TestObserveForwardsSnapshots(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	ch := make(chan *game.State)
	w.Observe(ch)
	sc := scenario.TaiwanStrait()
	ch <- game.NewState(sc, 5)
	close(ch)
	deadline := time.Now().Add(time.Second)
	for len(p.received()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	msgs := p.received()
	if len(msgs) == 0 {
		t.Fatal("no snapshot forwarded")
	}
	if _, ok := msgs[0].(snapshotMsg); !ok {
		t.Fatalf("expected snapshotMsg, got %T", msgs[0])
	}
}

func TestWrapToggle(t *testing.T) {
	m := newModel(nil)
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 40})
	m = mi.(model)
	long := "one two three four five six seven eight nine"
	mi, _ = m.Update(transcriptMsg{rec: game.TurnRecord{Turn: 1, Agent: game.AgentAnalyst, Summary: long}})
	m = mi.(model)
	if !m.wrap {
		t.Fatal("wrap should default on")
	}
	wrapped := strings.Split(m.vp.View(), "\n")
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	m = mi.(model)
	if m.wrap {
		t.Fatal("wrap not toggled off")
	}
	unwrapped := strings.Split(m.vp.View(), "\n")
	nonEmpty := func(lines []string) int {
		n := 0
		for _, l := range lines {
			if strings.TrimSpace(l) != "" {
				n++
			}
		}
		return n
	}
	if nonEmpty(wrapped) <= nonEmpty(unwrapped) {
		t.Fatalf("expected wrapping to produce more lines: %d vs %d", nonEmpty(wrapped), nonEmpty(unwrapped))
	}
}

func TestScrollToggle(t *testing.T) {
	m := newModel(nil)
	m.vp.Height = 1
	m.vp.Width = 20
	mi, _ := m.Update(transcriptMsg{rec: game.TurnRecord{Turn: 1, Summary: "l1"}})
	m = mi.(model)
	mi, _ = m.Update(transcriptMsg{rec: game.TurnRecord{Turn: 1, Summary: "l2"}})
	m = mi.(model)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset 1, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = mi.(model)
	if m.autoscroll {
		t.Fatal("autoscroll should be off")
	}
	mi, _ = m.Update(transcriptMsg{rec: game.TurnRecord{Turn: 1, Summary: "l3"}})
	m = mi.(model)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset unchanged, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = mi.(model)
	if m.vp.YOffset != 0 {
		t.Fatalf("expected YOffset 0 after scrolling up, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = mi.(model)
	if !m.autoscroll {
		t.Fatal("autoscroll should be on")
	}
	if m.vp.YOffset != len(m.transcript)-m.vp.Height {
		t.Fatalf("expected bottom offset, got %d", m.vp.YOffset)
	}
}

func TestQuitInvokesCancel(t *testing.T) {
	cancelled := false
	m := newModel(func() { cancelled = true })
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !cancelled {
		t.Fatal("cancel not invoked")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestSnapshotUpdatesUnits(t *testing.T) {
	sc := scenario.TaiwanStrait()
	st := game.NewState(sc, 5)
	m := newModel(nil)
	mi, _ := m.Update(snapshotMsg{state: st})
	m = mi.(model)
	if m.turn != 1 || m.maxTurns != 5 {
		t.Fatalf("unexpected turn state: %d/%d", m.turn, m.maxTurns)
	}
	want := len(st.BlueUnits) + len(st.RedUnits)
	if got := len(m.units.Rows()); got != want {
		t.Fatalf("expected %d unit rows, got %d", want, got)
	}
}
