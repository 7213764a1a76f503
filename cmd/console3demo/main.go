// console3demo is a headless smoke test for the session package: it
// starts a real shell, feeds it a command, pumps output through the
// parser into the grid, and prints the resulting screen text. It has
// no window and no GUI; it exists to exercise the library the way
// go-headless-term's basic example exercises its terminal emulator.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rizonesoft/Console3/session"
)

func main() {
	shellFlag := flag.String("shell", "/bin/sh", "shell to launch")
	commandFlag := flag.String("c", "printf 'hello from console3\\n'; ls /", "command to run")
	flag.Parse()

	cfg := session.Config{
		Shell: *shellFlag,
		Args:  []string{"-c", *commandFlag},
		Rows:  24,
		Cols:  80,
	}

	sess, err := session.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "console3demo: new session:", err)
		os.Exit(1)
	}

	exited := make(chan int, 1)
	sess.OnExit = func(code int) { exited <- code }
	sess.OnTitleChange = func(title string) {
		fmt.Fprintf(os.Stderr, "console3demo: title changed to %q\n", title)
	}

	if err := sess.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "console3demo: start:", err)
		os.Exit(1)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		sess.ProcessOutput()
		select {
		case code := <-exited:
			sess.ProcessOutput()
			printScreen(sess)
			os.Exit(code)
		default:
		}
		time.Sleep(10 * time.Millisecond)
	}

	fmt.Fprintln(os.Stderr, "console3demo: timed out waiting for shell to exit")
	printScreen(sess)
	sess.Stop()
	os.Exit(1)
}

func printScreen(sess *session.Session) {
	fmt.Println("=== screen ===")
	fmt.Println(sess.Grid().AllText())
}
