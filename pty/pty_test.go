package pty

import (
	"errors"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/rizonesoft/Console3/ringbuffer"
)

func TestInvalidGeometryRejected(t *testing.T) {
	s := New()
	ring := ringbuffer.New(4096)
	err := s.Start(Config{Shell: "/bin/sh", Cols: 0, Rows: 24}, ring)
	if err != ErrInvalidGeometry {
		t.Fatalf("Start with cols=0 = %v, want ErrInvalidGeometry", err)
	}
}

func TestStartRunStopLifecycle(t *testing.T) {
	s := New()
	ring := ringbuffer.New(64 * 1024)

	exited := make(chan int, 1)
	s.OnExit = func(code int) { exited <- code }

	err := s.Start(Config{Shell: "/bin/sh", Args: []string{"-c", "echo hello; exit 3"}, Cols: 80, Rows: 24}, ring)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != Running {
		t.Fatalf("State() after Start = %v, want Running", s.State())
	}
	if s.Pid() == 0 {
		t.Fatalf("Pid() = 0 after Start")
	}

	select {
	case code := <-exited:
		if code != 3 {
			t.Errorf("exit code = %d, want 3", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for shell to exit")
	}

	buf := make([]byte, 4096)
	n := ring.Read(buf)
	if !strings.Contains(string(buf[:n]), "hello") {
		t.Errorf("ring contents = %q, want to contain hello", buf[:n])
	}

	if s.State() != Exited {
		t.Errorf("State() after child exit = %v, want Exited", s.State())
	}
}

func TestAlreadyRunningRejectsSecondStart(t *testing.T) {
	s := New()
	ring := ringbuffer.New(4096)
	if err := s.Start(Config{Shell: "/bin/sh", Args: []string{"-c", "sleep 1"}, Cols: 80, Rows: 24}, ring); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer s.Stop()

	if err := s.Start(Config{Shell: "/bin/sh", Cols: 80, Rows: 24}, ring); err != ErrAlreadyRunning {
		t.Errorf("second Start = %v, want ErrAlreadyRunning", err)
	}
}

func TestStopUnblocksLongRunningChild(t *testing.T) {
	s := New()
	ring := ringbuffer.New(4096)
	if err := s.Start(Config{Shell: "/bin/sh", Args: []string{"-c", "sleep 30"}, Cols: 80, Rows: 24}, ring); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(6 * time.Second):
		t.Fatalf("Stop did not return promptly for a long-running child")
	}
}

func TestIsCleanShutdownDistinguishesEIOFromOtherErrno(t *testing.T) {
	if !isCleanShutdown(io.EOF) {
		t.Errorf("io.EOF should be a clean shutdown")
	}
	if !isCleanShutdown(syscall.EIO) {
		t.Errorf("bare syscall.EIO should be a clean shutdown")
	}
	if !isCleanShutdown(&os.PathError{Op: "read", Path: "/dev/ptmx", Err: syscall.EIO}) {
		t.Errorf("*os.PathError wrapping EIO should be a clean shutdown")
	}
	if isCleanShutdown(&os.PathError{Op: "read", Path: "/dev/ptmx", Err: syscall.EBADF}) {
		t.Errorf("*os.PathError wrapping EBADF should not be a clean shutdown")
	}
	if isCleanShutdown(syscall.EBADF) {
		t.Errorf("bare syscall.EBADF should not be a clean shutdown")
	}
}

func TestFatalReaderErrorInvokesOnErrorAndSyntheticExitCode(t *testing.T) {
	s := New()
	s.state = Running

	var gotErr error
	s.OnError = func(err error) { gotErr = err }
	var gotExit int
	gotExitSeen := false
	s.OnExit = func(code int) { gotExit, gotExitSeen = code, true }

	fatal := &os.PathError{Op: "read", Path: "/dev/ptmx", Err: syscall.EBADF}
	if isCleanShutdown(fatal) {
		t.Fatalf("test fixture error unexpectedly classified as clean shutdown")
	}
	ioErr := &ReaderIOError{Err: fatal}
	s.lastError = ioErr
	if s.OnError != nil {
		s.OnError(ioErr)
	}
	s.finishFatal(fatal)

	if gotErr == nil {
		t.Fatalf("OnError was not invoked")
	}
	var rioErr *ReaderIOError
	if !errors.As(gotErr, &rioErr) {
		t.Errorf("OnError err = %T, want *ReaderIOError", gotErr)
	}
	if !gotExitSeen {
		t.Fatalf("OnExit was not invoked")
	}
	if gotExit != int(syscall.EBADF) {
		t.Errorf("synthetic exit code = %d, want %d", gotExit, int(syscall.EBADF))
	}
	if s.State() != Exited {
		t.Errorf("State() = %v, want Exited", s.State())
	}
}

func TestStopRecordsTimeoutErrorWhenReaderNeverJoins(t *testing.T) {
	s := New()
	s.state = Running
	s.stopped = make(chan struct{})
	s.readerWG.Add(1) // deliberately never Done, to force the timeout branch

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(7 * time.Second):
		t.Fatalf("Stop did not return even after its own 5s deadline")
	}

	if s.LastError() != ErrStopTimeout {
		t.Errorf("LastError() = %v, want ErrStopTimeout", s.LastError())
	}
	s.readerWG.Done()
}

func TestWriteEchoesThroughPTY(t *testing.T) {
	s := New()
	ring := ringbuffer.New(64 * 1024)
	if err := s.Start(Config{Shell: "/bin/cat", Cols: 80, Rows: 24}, ring); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if _, err := s.Write([]byte("ping\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	var got string
	for time.Now().Before(deadline) {
		buf := make([]byte, 256)
		n := ring.Read(buf)
		got += string(buf[:n])
		if strings.Contains(got, "ping") {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !strings.Contains(got, "ping") {
		t.Fatalf("PTY echo = %q, want to contain ping", got)
	}
}
