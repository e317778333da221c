// twenty20twenty - 20-20-20 eye rest reminder for the system tray.
//
// Every 20 minutes a desktop notification reminds you to look at something
// 20 feet away for 20 seconds. Silent Mode in the tray menu pauses the
// reminders; turning it off restarts the 20 minute countdown.
//
// Build for Windows without a console window:
//
//	GOOS=windows go build -ldflags "-H=windowsgui" .
//
// Exit status is 0 on a normal exit and when another instance is already
// running, 1 on any startup failure.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/twenty20twenty/twenty20twenty/internal/cli"
	"github.com/twenty20twenty/twenty20twenty/internal/instance"
)

func main() {
	os.Exit(exitCode(cli.Execute()))
}

func exitCode(err error) int {
	if err == nil || errors.Is(err, instance.ErrAlreadyRunning) {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
