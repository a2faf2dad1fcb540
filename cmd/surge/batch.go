package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ppbuf/internal/bufcheck"
	"ppbuf/internal/driver"
	"ppbuf/internal/ui"
)

var checkDirCmd = &cobra.Command{
	Use:   "check-dir [flags] dir",
	Short: "Build a token buffer for every *.sg file under dir, in parallel, and check invariants",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckDir,
}

func init() {
	checkDirCmd.Flags().String("config", "", "path to a predefined-macros TOML file")
	checkDirCmd.Flags().Int("jobs", 0, "worker count (default: GOMAXPROCS)")
	checkDirCmd.Flags().Bool("ui", false, "show a live progress display while building")
}

func runCheckDir(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	showUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return err
	}

	var results []driver.BuildDirResult
	if showUI {
		results, err = runCheckDirWithUI(cmd, args[0], configPath, jobs)
	} else {
		results, err = driver.BuildTokenBuffersDir(cmd.Context(), args[0], configPath, jobs)
	}
	if err != nil {
		return fmt.Errorf("check-dir: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			continue
		}
		if errs := bufcheck.Check(r.Result.Buffer); len(errs) > 0 {
			failed++
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "%s: invariant violated: %v\n", r.Path, e)
			}
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: ok\n", r.Path)
	}

	if failed > 0 {
		return fmt.Errorf("check-dir: %d of %d files failed", failed, len(results))
	}
	return nil
}

func runCheckDirWithUI(cmd *cobra.Command, dir, configPath string, jobs int) ([]driver.BuildDirResult, error) {
	files, err := driver.ListSGFiles(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.BuildEvent)
	var results []driver.BuildDirResult
	var buildErr error
	done := make(chan struct{})
	go func() {
		results, buildErr = driver.BuildTokenBuffersDirEvents(cmd.Context(), dir, configPath, jobs, events)
		close(done)
	}()

	program := tea.NewProgram(ui.NewProgressModel("building token buffers", files, events))
	if _, err := program.Run(); err != nil {
		return nil, err
	}
	<-done
	return results, buildErr
}
