package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ppbuf/internal/driver"
	"ppbuf/internal/pptoken"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] file.sg",
	Short: "Build the preprocessor-aware token buffer and print its debug dump",
	Long:  `Dump expands every macro definition in a file, fuses the raw and expanded token streams into a TokenBuffer, and prints it in the stable debug format.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("config", "", "path to a predefined-macros TOML file")
}

func runDump(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	content, configContent, err := readForCacheKey(args[0], configPath)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	cache, cacheErr := driver.OpenDumpCache("surge")
	key := driver.Key(content, configContent)
	if cacheErr == nil {
		if cached, ok, err := cache.Get(key); err == nil && ok {
			_, err := fmt.Fprint(os.Stdout, cached.DumpText)
			return err
		}
	}

	result, err := driver.BuildTokenBuffer(args[0], configPath)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	var sb strings.Builder
	if err := pptoken.Dump(&sb, result.Buffer); err != nil {
		return err
	}
	if cacheErr == nil {
		_ = cache.Put(key, &driver.CachedDump{DumpText: sb.String()})
	}
	_, err = fmt.Fprint(os.Stdout, sb.String())
	return err
}

func readForCacheKey(path, configPath string) (content, configContent []byte, err error) {
	content, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if configPath != "" {
		configContent, err = os.ReadFile(configPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return content, configContent, nil
}
