package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aslc/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [file.asl]",
	Short: "Compile a source file to three-address code",
	Long: `build runs the full pipeline and writes the generated TAC next to
the source file (or into the manifest's out_dir) as <name>.t`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	path, manifest, err := resolveInput(args)
	if err != nil {
		return err
	}

	res, err := driver.CompileFile(path, compileOptions(cmd))
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, res); err != nil {
		return err
	}

	outPath := tacOutputPath(path, manifest)
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()
	if err := res.Tac.Dump(out); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	}
	return nil
}

// resolveInput picks the source file from the argument or the manifest.
func resolveInput(args []string) (string, *manifest, error) {
	m, found, err := loadManifest(".")
	if err != nil {
		return "", nil, err
	}
	if len(args) == 1 {
		if found {
			return args[0], m, nil
		}
		return args[0], nil, nil
	}
	if found && m.Config.Build.Main != "" {
		return filepath.Join(m.Root, m.Config.Build.Main), m, nil
	}
	return "", nil, fmt.Errorf("no input file; pass one explicitly or set build.main in aslc.toml")
}

// tacOutputPath derives <name>.t, honoring the manifest out_dir.
func tacOutputPath(src string, m *manifest) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".t"
	if m != nil && m.Config.Build.OutDir != "" {
		return filepath.Join(m.Root, m.Config.Build.OutDir, base)
	}
	return filepath.Join(filepath.Dir(src), base)
}
