package main

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mixmate/internal/bottles"
	"github.com/vovakirdan/mixmate/internal/config"
	"github.com/vovakirdan/mixmate/internal/session"
	"github.com/vovakirdan/mixmate/internal/storage"
)

type memorySaver struct {
	results []storage.Result
	err     error
}

func (m *memorySaver) SaveResult(r storage.Result) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.results = append(m.results, r)
	return int64(len(m.results)), nil
}

func (m *memorySaver) BestMoves(shape storage.Shape) (int, error) {
	best := 0
	for _, r := range m.results {
		if r.Solved && r.Shape() == shape && (best == 0 || r.Moves < best) {
			best = r.Moves
		}
	}
	return best, nil
}

func easyGameConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, config.ApplyPreset(&cfg, config.DifficultyEasy))
	return cfg
}

func newTestGame(t *testing.T, saver resultSaver) (*game, *bytes.Buffer) {
	t.Helper()
	return newTestGameWith(t, easyGameConfig(t), saver)
}

func newTestGameWith(t *testing.T, cfg config.Config, saver resultSaver) (*game, *bytes.Buffer) {
	t.Helper()
	sess, err := session.New(cfg, bottles.NewSeededSource(3))
	require.NoError(t, err)

	var out bytes.Buffer
	return &game{
		sess:   sess,
		cfg:    cfg,
		out:    &out,
		saver:  saver,
		logger: log.New(io.Discard),
	}, &out
}

// firstMovablePour finds a pour that moves liquid on the current board.
func firstMovablePour(t *testing.T, g *game) (int, int) {
	t.Helper()
	set := g.sess.Bottles()
	rules := g.cfg.Rules()
	for src := range set {
		for dst := range set {
			if src != dst && rules.CanPour(set, src, dst, g.sess.Capacity()) {
				return src, dst
			}
		}
	}
	t.Fatal("no movable pour on a fresh puzzle")
	return 0, 0
}

func TestParseBottles(t *testing.T) {
	nums, err := parseBottles([]string{"3", "5"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, nums)

	_, err = parseBottles([]string{"3", "x"})
	assert.Error(t, err)
}

func TestGameQuitWithoutMovesSavesNothing(t *testing.T) {
	saver := &memorySaver{}
	g, out := newTestGame(t, saver)

	require.NoError(t, g.run(strings.NewReader("q\n")))
	assert.Empty(t, saver.results)
	assert.Contains(t, out.String(), "moves: 0")
}

func TestGamePourAndQuitSavesAbandoned(t *testing.T) {
	saver := &memorySaver{}
	g, out := newTestGame(t, saver)
	src, dst := firstMovablePour(t, g)

	input := strings.Join([]string{
		"",
		strconv.Itoa(src+1) + " " + strconv.Itoa(dst+1),
		"q",
	}, "\n")
	require.NoError(t, g.run(strings.NewReader(input)))

	require.Len(t, saver.results, 1)
	assert.Equal(t, 1, saver.results[0].Moves)
	assert.False(t, saver.results[0].Solved)
	assert.Contains(t, out.String(), "moves: 1")
}

func TestGameClickPour(t *testing.T) {
	g, _ := newTestGame(t, nil)
	src, dst := firstMovablePour(t, g)

	assert.False(t, g.handle(strconv.Itoa(src+1)))
	picked, _ := g.sess.Selection()
	assert.Equal(t, src, picked)

	assert.False(t, g.handle(strconv.Itoa(dst+1)))
	assert.Equal(t, 1, g.sess.Moves())
	assert.False(t, g.sess.Busy())
}

func TestGameEndOfInputSaves(t *testing.T) {
	saver := &memorySaver{}
	g, _ := newTestGame(t, saver)
	src, dst := firstMovablePour(t, g)

	require.NoError(t, g.run(strings.NewReader(strconv.Itoa(src+1)+" "+strconv.Itoa(dst+1)+"\n")))
	assert.Len(t, saver.results, 1)
}

func TestGameRestartSavesOnce(t *testing.T) {
	saver := &memorySaver{}
	g, _ := newTestGame(t, saver)
	src, dst := firstMovablePour(t, g)

	g.handle(strconv.Itoa(src+1) + " " + strconv.Itoa(dst+1))
	g.handle("r")
	assert.Len(t, saver.results, 1)
	assert.Zero(t, g.sess.Moves())

	// Nothing played on the new puzzle.
	g.handle("q")
	g.save()
	assert.Len(t, saver.results, 1)
}

func TestGameReportsInvalidInput(t *testing.T) {
	g, out := newTestGame(t, nil)

	g.handle("banana")
	assert.Contains(t, out.String(), `unknown command "banana"`)

	g.handle("1 99")
	assert.Contains(t, out.String(), "invalid move")

	g.handle("1 2 3")
	assert.Contains(t, out.String(), "enter one bottle to pick or two to pour")

	assert.Zero(t, g.sess.Moves())
}

func TestGameSaveErrorIsNotFatal(t *testing.T) {
	saver := &memorySaver{err: errors.New("disk full")}
	g, _ := newTestGame(t, saver)
	src, dst := firstMovablePour(t, g)

	g.handle(strconv.Itoa(src+1) + " " + strconv.Itoa(dst+1))
	g.save()
	assert.False(t, g.saved)
}

func TestGameQuitCommands(t *testing.T) {
	g, _ := newTestGame(t, nil)
	for _, cmd := range []string{"q", "quit", "EXIT"} {
		assert.True(t, g.handle(cmd), cmd)
	}
	assert.False(t, g.handle("h"))
}

func TestGameSkipsSavingPuzzleGeneratedSorted(t *testing.T) {
	cfg := easyGameConfig(t)
	cfg.Mix.Rounds = 0 // Every attempt stays sorted.
	cfg.Play.RestartAttempts = 1

	saver := &memorySaver{}
	g, _ := newTestGameWith(t, cfg, saver)
	require.True(t, g.sess.Won())
	require.Zero(t, g.sess.Moves())

	require.NoError(t, g.run(strings.NewReader("r\nq\n")))
	assert.Empty(t, saver.results)
}

func TestGameShowsBestMoves(t *testing.T) {
	saver := &memorySaver{results: []storage.Result{
		{Colors: 3, Capacity: 4, Spare: 2, Moves: 17, Solved: true},
		{Colors: 3, Capacity: 4, Spare: 2, Moves: 9, Solved: false},
		{Colors: 6, Capacity: 15, Spare: 2, Moves: 4, Solved: true},
	}}
	g, out := newTestGame(t, saver)
	g.loadBest()
	assert.Equal(t, 17, g.best)

	g.draw()
	assert.Contains(t, out.String(), "best: 17")
}

func TestGameFindColor(t *testing.T) {
	g, out := newTestGame(t, nil)

	var want []string
	for i, b := range g.sess.Bottles() {
		if top, ok := b.Top(); ok && top == bottles.ColorMate {
			want = append(want, strconv.Itoa(i+1))
		}
	}

	g.handle("f mate")
	if len(want) == 0 {
		assert.Contains(t, out.String(), "no bottle has mate on top")
	} else {
		assert.Contains(t, out.String(), "mate on top: "+strings.Join(want, " "))
	}

	out.Reset()
	g.handle("f zero") // Not part of a three-color puzzle.
	assert.Contains(t, out.String(), `unknown color "zero"`)

	out.Reset()
	g.handle("f")
	assert.Contains(t, out.String(), "usage: f <color>")
}
