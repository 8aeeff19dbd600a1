package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dxspv/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] shader.dxbc|directory",
	Short: "Translate a shader to SPIR-V",
	Long:  `Compile scans a shader for validity and descriptor bindings, then translates its token stream to a SPIR-V module`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output file (default: input with .spv extension)")
	compileCmd.Flags().String("entry", "", "entry point name (default main)")
	compileCmd.Flags().String("dump-path", "", "directory to dump incoming shaders to")
	compileCmd.Flags().Int("jobs", 0, "parallel workers for directory compiles (0 = one per CPU)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.Target = driver.TargetSPIRV

	if entry, _ := cmd.Flags().GetString("entry"); entry != "" {
		opts.EntryPoint = entry
	}
	if dump, _ := cmd.Flags().GetString("dump-path"); dump != "" {
		opts.DumpPath = dump
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	if info.IsDir() {
		jobs, _ := cmd.Flags().GetInt("jobs")
		if jobs == 0 {
			jobs = cfg.Jobs
		}
		return compileDirectory(args[0], opts, jobs)
	}

	out, _ := cmd.Flags().GetString("output")
	return compileFile(args[0], out, opts)
}

func compileFile(path, out string, opts driver.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts.SourceName = path

	res, err := driver.Compile(data, opts)
	if res.Messages != "" {
		fmt.Fprint(os.Stderr, res.Messages)
	}
	if err != nil {
		return fmt.Errorf("compile failed: %s", res.Status)
	}

	if out == "" {
		out = strings.TrimSuffix(path, ".dxbc") + ".spv"
	}
	if err := os.WriteFile(out, res.SPIRV, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s: %s -> %s (%d bytes)\n", path, res.Version, out, len(res.SPIRV))
	return nil
}

func compileDirectory(dir string, opts driver.Options, jobs int) error {
	results, err := driver.CompileDir(context.Background(), dir, opts, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Result.Messages != "" {
			fmt.Fprint(os.Stderr, r.Result.Messages)
		}
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			failed++
			continue
		}
		fmt.Printf("%s: %s ok\n", r.Path, r.Result.Version)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d shaders failed", failed, len(results))
	}
	return nil
}
