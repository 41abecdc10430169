package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sunset/internal/input"
	"github.com/vovakirdan/tui-sunset/internal/present"
)

func TestDisplayWithoutPair(t *testing.T) {
	d := NewDisplay()

	assert.Nil(t, d.BeginFrame(1))
	assert.ErrorIs(t, d.Swap(1), ErrClosed)
	assert.ErrorIs(t, d.DestroySurfacePair(1), ErrClosed)

	_, ok := d.PollEvent()
	assert.False(t, ok)
}

func TestDisplayEventQueue(t *testing.T) {
	d := NewDisplay()

	d.emit(input.Press("+"))
	d.emit(input.CloseRequest())
	d.emit(input.Press("-"))
	d.emit(input.CloseRequest())

	var got []input.RawEvent
	for {
		ev, ok := d.PollEvent()
		if !ok {
			break
		}
		got = append(got, ev)
	}

	require.Len(t, got, 3, "keys first, then a single close")
	assert.Equal(t, input.Press("+"), got[0])
	assert.Equal(t, input.Press("-"), got[1])
	assert.Equal(t, input.Close, got[2].Kind)
}

func TestDisplayDropsKeysWhenFull(t *testing.T) {
	d := NewDisplay()
	for i := 0; i < eventBuffer+10; i++ {
		d.emit(input.Press("+"))
	}

	n := 0
	for {
		if _, ok := d.PollEvent(); !ok {
			break
		}
		n++
	}
	assert.Equal(t, eventBuffer, n)
}

func TestExternalDisplayClosesWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewExternalDisplay(ctx)
	cancel()

	require.Eventually(t, func() bool {
		ev, ok := d.PollEvent()
		return ok && ev.Kind == input.Close
	}, time.Second, time.Millisecond)
}

func TestDisplayRunsLoop(t *testing.T) {
	d := NewDisplay(
		WithHelp(false),
		WithProgramOptions(
			tea.WithInput(iotest.OneByteReader(strings.NewReader("++q"))),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
		),
	)
	loop := present.NewLoop(d, present.WithInterval(time.Millisecond))

	done := make(chan int, 1)
	go func() { done <- loop.Run(context.Background(), 40, 30) }()

	select {
	case code := <-done:
		assert.Equal(t, present.ExitOK, code)
	case <-time.After(10 * time.Second):
		t.Fatal("loop did not stop on q")
	}

	stats := loop.Stats()
	assert.Equal(t, 3, stats.Commands)
	assert.NoError(t, loop.Err())
}

func TestDisplayRejectsSecondPair(t *testing.T) {
	d := NewDisplay(WithProgramOptions(
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	))

	h, err := d.CreateSurfacePair(10, 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.DestroySurfacePair(h) })

	_, err = d.CreateSurfacePair(10, 10)
	assert.Error(t, err)

	back := d.BeginFrame(h)
	require.NotNil(t, back)
	assert.Equal(t, 10, back.Width())
	assert.NoError(t, d.Swap(h))
}

func TestDisplayTerminalFailureIsAcquisitionFailure(t *testing.T) {
	d := NewDisplay()
	d.run = func() (tea.Model, error) { return nil, errors.New("could not open a new TTY") }
	loop := present.NewLoop(d, present.WithInterval(time.Millisecond))

	code := loop.Run(context.Background(), 40, 30)

	assert.Equal(t, present.ExitAcquisitionFailure, code)
	require.ErrorIs(t, loop.Err(), present.ErrAcquisition)
	assert.Contains(t, loop.Err().Error(), "could not open a new TTY")
	assert.Zero(t, loop.Stats().Frames)
}

func TestDisplayProgramExitBeforeStart(t *testing.T) {
	d := NewDisplay()
	d.run = func() (tea.Model, error) { return nil, nil }

	_, err := d.CreateSurfacePair(10, 10)
	assert.ErrorIs(t, err, ErrProgramExited)
	assert.Nil(t, d.BeginFrame(1))
}

func TestExternalDisplayWaitsForProgram(t *testing.T) {
	d := NewExternalDisplay(context.Background(), WithProgramOptions(
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	))

	created := make(chan error, 1)
	go func() {
		_, err := d.CreateSurfacePair(10, 10)
		created <- err
	}()

	select {
	case err := <-created:
		t.Fatalf("pair created before the program ran: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_, _ = d.Program().Run()
	}()

	select {
	case err := <-created:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pair not created once the program ran")
	}

	d.Program().Quit()
	<-runDone
}

func TestExternalDisplayContextEndBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewExternalDisplay(ctx)
	cancel()

	_, err := d.CreateSurfacePair(10, 10)
	assert.ErrorIs(t, err, ErrProgramExited)
}
