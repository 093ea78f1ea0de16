package wave

import (
	"sync"
	"testing"
)

func TestBufferLatestWins(t *testing.T) {
	var b Buffer
	b.Publish([]float64{0.1}, []float64{0.1})
	b.Publish([]float64{0.9, 0.8}, []float64{0.7, 0.6})

	var blk Block
	b.Snapshot(&blk)

	if blk.Frames != 2 || blk.Left[0] != 0.9 || blk.Right[1] != 0.6 {
		t.Errorf("snapshot = %+v", blk)
	}
	if b.Seq() != 2 {
		t.Errorf("seq = %d", b.Seq())
	}
}

func TestBufferEmptyPublishKeepsData(t *testing.T) {
	var b Buffer
	b.Publish([]float64{0.5}, nil)
	b.Publish(nil, nil)

	var blk Block
	b.Snapshot(&blk)
	if blk.Frames != 1 || blk.Left[0] != 0.5 {
		t.Errorf("empty publish must not clobber data: %+v", blk)
	}
	if b.Seq() != 1 {
		t.Errorf("empty publish must not bump seq: %d", b.Seq())
	}
}

func TestBufferMonoDuplicates(t *testing.T) {
	var b Buffer
	b.Publish([]float64{0.2, 0.4}, nil)

	var blk Block
	b.Snapshot(&blk)
	if blk.Right[0] != 0.2 || blk.Right[1] != 0.4 {
		t.Errorf("mono right channel = %v", blk.Right)
	}
}

func TestBufferZeroValueSnapshot(t *testing.T) {
	var b Buffer
	var blk Block
	b.Snapshot(&blk)
	if blk.Frames != 0 {
		t.Errorf("zero buffer should read as silence: %+v", blk)
	}
}

func TestBufferConcurrentAccess(t *testing.T) {
	var b Buffer
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(2)
	go func() {
		defer wg.Done()
		block := []float64{0.1, 0.2, 0.3}
		for i := 0; i < 1000; i++ {
			b.Publish(block, block)
		}
		close(done)
	}()
	go func() {
		defer wg.Done()
		var blk Block
		for {
			select {
			case <-done:
				return
			default:
				b.Snapshot(&blk)
				if blk.Frames != 0 && blk.Frames != 3 {
					t.Errorf("torn snapshot: %d frames", blk.Frames)
					return
				}
			}
		}
	}()
	wg.Wait()
}

func TestTapMutedKeepsPrevious(t *testing.T) {
	tap := NewTap()
	tap.Deliver([]float64{0.8}, nil, false)
	tap.Deliver([]float64{0}, nil, true)

	var blk Block
	tap.Buffer().Snapshot(&blk)
	if blk.Frames != 1 || blk.Left[0] != 0.8 {
		t.Errorf("muted delivery should retain previous block: %+v", blk)
	}
}

func TestTapKickCoalesces(t *testing.T) {
	tap := NewTap()
	tap.Deliver([]float64{0.1}, nil, false)
	tap.Deliver([]float64{0.2}, nil, false)
	tap.Deliver([]float64{0.3}, nil, false)

	select {
	case <-tap.Kick():
	default:
		t.Fatal("expected a pending kick")
	}
	select {
	case <-tap.Kick():
		t.Fatal("kicks should coalesce to one")
	default:
	}
}

func TestTapCloseRejectsDeliveries(t *testing.T) {
	tap := NewTap()
	tap.Deliver([]float64{0.4}, nil, false)
	tap.Close()
	tap.Deliver([]float64{0.9}, nil, false)

	var blk Block
	tap.Buffer().Snapshot(&blk)
	if blk.Left[0] != 0.4 {
		t.Errorf("delivery after Close should be dropped: %+v", blk)
	}

	// Closing twice is a no-op.
	tap.Close()
}

func TestTapCloseWaitsForInflight(t *testing.T) {
	tap := NewTap()
	stop := make(chan struct{})

	var wg sync.WaitGroup
	block := []float64{0.5, 0.5}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					tap.Deliver(block, block, false)
				}
			}
		}()
	}

	tap.Close()

	// Once Close has returned, no delivery may still be publishing.
	seq := tap.Buffer().Seq()
	for i := 0; i < 100; i++ {
		if got := tap.Buffer().Seq(); got != seq {
			t.Fatalf("publish after Close returned: seq %d -> %d", seq, got)
		}
	}

	close(stop)
	wg.Wait()
}
