// Package launcher sequences the deployment bootstrap.
//
// A Launcher holds an ordered list of steps (secrets, migrate, serve) and runs
// them one after another. There is no branching, retry or parallelism: the
// first step that fails ends the launch and the remaining steps are never
// started.
//
// # Exit Codes
//
// A failure is returned as *StepError naming the step. When the step failed
// because an external program exited non-zero, the StepError carries that
// program's exit code; otherwise it carries 1. ExitCode turns the result of
// Run into the code the launcher process should exit with, 0 meaning the last
// step (the server) exited cleanly.
//
// # Usage
//
//	l := launcher.New(logg,
//	    launcher.NewStep("secrets", loadSecrets),
//	    launcher.NewStep("migrate", migrate),
//	    launcher.NewStep("serve", serve),
//	)
//	os.Exit(launcher.ExitCode(l.Run(ctx)))
package launcher
