package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ppbuf/internal/bufcheck"
	"ppbuf/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.sg",
	Short: "Build the token buffer and verify its structural invariants",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("config", "", "path to a predefined-macros TOML file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	result, err := driver.BuildTokenBuffer(args[0], configPath)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	errs := bufcheck.Check(result.Buffer)
	if len(errs) == 0 {
		fmt.Fprintln(os.Stdout, "ok: token buffer invariants hold")
		return nil
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "invariant violated: %v\n", e)
	}
	return fmt.Errorf("check: %d invariant violation(s)", len(errs))
}
