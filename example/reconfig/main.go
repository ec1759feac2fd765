package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/logdw"
)

// Write constantly while the socket path flips between two locations
func main() {
	var count atomic.Int64

	dir, err := os.MkdirTemp("", "logdw-reconfig")
	if err != nil {
		fmt.Printf("Temp dir error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	t := logdw.NewTransport()
	paths := []string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}

	stop := make(chan struct{})
	go func() {
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			t.Print(logdw.PriorityInfo, "reconfig", "Test log %d", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	for i := 0; i < 10; i++ {
		if err := t.ApplyConfigString("socket_path=" + paths[i%2]); err != nil {
			fmt.Printf("Reconfig error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	close(stop)

	// No collector listens on either path, so every record is dropped
	// and each path change costs exactly one dial.
	fmt.Printf("Attempted: %d\n", count.Load())
	fmt.Printf("Stats: %s\n", t.Stats())

	if err := t.Close(); err != nil {
		fmt.Printf("Close error: %v\n", err)
	}
}
