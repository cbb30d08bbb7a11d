package view

import (
	"bytes"
	"io"
	"lifeboard/src/universe"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsoleOut(t *testing.T) {
	o := universe.DefaultUniverseOptions
	o.Width = 30
	o.Height = 12
	o.Interval = 0
	o.MaxSteps = 25
	o.Seed = 3
	o.Logger = log.New(io.Discard, "", 0)
	stateCh := make(chan universe.Status, 10)
	u := universe.NewBaseUniverse(&o, stateCh)
	defer u.Close()

	var out bytes.Buffer
	c := NewConsoleOut(&out, 5, false)
	u.RegisterViewer(c)
	require.Contains(t, out.String(), "Running configuration:")
	require.Contains(t, out.String(), "Dimension: 30 x 12")
	require.Contains(t, out.String(), "Rules: B3/S23")

	require.NoError(t, u.SettleTemplate("Blinker", 3, 3))
	c.Start()
	u.Run()
	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case st := <-stateCh:
			done = st.RunningMode == universe.RunningStateFinished
		case <-timeout:
			t.Fatal("the simulation did not finish")
		}
	}

	//the finish summary is printed right after the state switch
	u.Snapshot()
	text := out.String()
	require.Contains(t, text, "Iterations done: 5, live cells: 3")
	require.Contains(t, text, "Iterations done: 20, live cells: 3")
	require.Contains(t, text, "Finished:")
	require.Contains(t, text, "Last iteration: 25")
	require.Contains(t, text, "Cells born: 50")
}
