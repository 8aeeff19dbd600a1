package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dxspv/internal/driver"
	"dxspv/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] shader.dxbc|directory",
	Short: "Validate a shader and list its descriptor bindings",
	Long:  `Scan checks the structural validity of a shader's control flow and reports every descriptor binding it declares`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().Bool("bindings", true, "collect descriptor bindings")
	scanCmd.Flags().Bool("cache", false, "cache scan results on disk")
	scanCmd.Flags().Int("jobs", 0, "parallel workers for directory scans (0 = one per CPU)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.Bindings, _ = cmd.Flags().GetBool("bindings")

	useCache, _ := cmd.Flags().GetBool("cache")
	if !useCache {
		useCache = cfg.Cache
	}
	var cache *driver.DiskCache
	if useCache {
		cache, err = driver.OpenDiskCache("dxspv")
		if err != nil {
			return fmt.Errorf("failed to open scan cache: %w", err)
		}
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
		return scanDirectory(cmd, args[0], opts, cache, jobs)
	}
	return scanFile(args[0], opts, cache)
}

func scanFile(path string, opts driver.Options, cache *driver.DiskCache) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts.SourceName = path

	res, err := driver.CachedScan(data, opts, cache)
	printScanResult(path, res)
	if err != nil {
		return fmt.Errorf("scan failed: %s", res.Status)
	}
	return nil
}

func scanDirectory(cmd *cobra.Command, dir string, opts driver.Options, cache *driver.DiskCache, jobs int) error {
	results, err := driver.ScanDir(context.Background(), dir, opts, cache, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil && r.Result.Status == driver.StatusOK {
			// I/O problem, not a shader problem.
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			failed++
			continue
		}
		printScanResult(r.Path, r.Result)
		if r.Result.Status != driver.StatusOK {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d shaders failed", failed, len(results))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d shaders ok\n", len(results))
	return nil
}

var (
	scanOKColor   = color.New(color.FgGreen)
	scanFailColor = color.New(color.FgRed, color.Bold)
)

func printScanResult(path string, res driver.Result) {
	if res.Messages != "" {
		fmt.Fprint(os.Stderr, res.Messages)
	}
	if res.Status != driver.StatusOK {
		scanFailColor.Printf("%s: %s\n", path, res.Status)
		return
	}
	scanOKColor.Printf("%s: %s, %d binding(s)\n", path, res.Version, len(res.Bindings))
	for _, b := range res.Bindings {
		fmt.Printf("  %s space=%d slot=%d %s %s%s\n",
			b.Kind, b.Space, b.Index, b.Shape, b.ElementType, flagSuffix(b.Flags))
	}
}

func flagSuffix(f scan.BindingFlags) string {
	s := ""
	if f&scan.FlagUAVRead != 0 {
		s += " read"
	}
	if f&scan.FlagUAVCounter != 0 {
		s += " counter"
	}
	if f&scan.FlagSamplerComparison != 0 {
		s += " comparison"
	}
	return s
}
