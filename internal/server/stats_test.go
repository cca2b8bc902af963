package server

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSiteStatsSnapshot(t *testing.T) {
	s := NewSiteStats()

	snap := s.Snapshot()
	assert.Zero(t, snap.BuildsTotal)
	assert.True(t, snap.LastBuildAt.IsZero(), "no build recorded yet")

	s.RecordBuild(12, 30, 2, 150*time.Millisecond)
	s.RecordBuildFailure()

	snap = s.Snapshot()
	assert.Equal(t, uint64(1), snap.BuildsTotal)
	assert.Equal(t, uint64(1), snap.BuildFailures)
	assert.Equal(t, uint64(2), snap.PageErrors)
	assert.Equal(t, uint64(12), snap.Pages)
	assert.Equal(t, uint64(30), snap.Widgets)
	assert.Equal(t, uint64(150), snap.LastBuildMs)
	assert.False(t, snap.LastBuildAt.IsZero())
}

func TestSiteStatsGaugesTrackLastBuild(t *testing.T) {
	s := NewSiteStats()

	s.RecordBuild(10, 20, 1, time.Second)
	s.RecordBuild(8, 15, 0, time.Second)

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.BuildsTotal, "totals accumulate")
	assert.Equal(t, uint64(1), snap.PageErrors, "page errors accumulate")
	assert.Equal(t, uint64(8), snap.Pages, "gauges follow the last build")
	assert.Equal(t, uint64(15), snap.Widgets)
}

func TestSiteStatsConcurrent(t *testing.T) {
	s := NewSiteStats()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.RecordBuild(1, 1, 0, time.Millisecond)
				s.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(800), s.Snapshot().BuildsTotal)
}
