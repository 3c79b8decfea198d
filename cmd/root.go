package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeprompt/pkg/export"
	"codeprompt/pkg/logging"
	"codeprompt/pkg/settings"
)

var (
	targetDir         string
	outputDir         string
	configPath        string
	extensions        []string
	excludeFiles      []string
	excludeDirs       []string
	focusDirs         []string
	chunkSize         int
	noSummary         bool
	noDefaultExcludes bool
	singleFile        string
	respectGitignore  bool
	tokenModel        string
	copyOutput        bool
	debug             bool
)

// RootCmd is the base command; running it builds a code prompt export.
var RootCmd = &cobra.Command{
	Use:   "codeprompt",
	Short: "Codeprompt exports a project's text files into one delimited document",
	Long: `Codeprompt scans a directory tree, selects text source files by extension
and exclusion rules, and writes a single delimited export document (optionally
chunked) summarizing and concatenating their contents, ready to paste into a
large text window.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.Setup(debug)
		if err != nil {
			log.Printf("Failed to initialize logger: %v", err)
		}
		defer logging.Sync(logger)

		file := settings.Load(configPath, logger)
		cfg, err := settings.Merge(file, settings.Overrides{
			Extensions:        extensions,
			ExcludeFiles:      excludeFiles,
			ExcludeDirs:       excludeDirs,
			FocusDirs:         focusDirs,
			ChunkSize:         chunkSize,
			ChunkSizeSet:      cmd.Flags().Changed("chunk-size"),
			NoSummary:         noSummary,
			NoDefaultExcludes: noDefaultExcludes,
			RespectGitignore:  respectGitignore,
			TokenModel:        tokenModel,
		})
		if err != nil {
			return err
		}

		fmt.Println("Building code prompt...")
		res, err := export.Run(targetDir, outputDir, cfg, singleFile, logger)
		if err != nil {
			logger.Error("Export failed", zap.Error(err))
			fmt.Printf("Failed with %d errors. Check output or logs.\n", len(res.Errors))
			return err
		}

		reportResult(res)

		if copyOutput {
			if err := clipboard.WriteAll(res.Document); err != nil {
				logger.Warn("Failed to copy output to clipboard", zap.Error(err))
				fmt.Printf("Warning: could not copy output to clipboard (%v).\n", err)
			} else {
				fmt.Println("Output copied to clipboard.")
			}
		}
		return nil
	},
}

// reportResult prints the human-facing completion summary.
func reportResult(res export.Result) {
	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		absTarget = targetDir
	}
	binaryMsg := ""
	if res.BinarySkips > 0 {
		binaryMsg = fmt.Sprintf(" (Skipped %d binary files)", res.BinarySkips)
	}
	msg := fmt.Sprintf("Done! Processed %d files with %d lines, %s tokens (%s) from '%s'%s.",
		res.FileCount, res.TotalLines, export.FormatTokenCount(res.TotalTokens),
		export.FormatFileSize(res.TotalSize), absTarget, binaryMsg)
	if len(res.Errors) > 0 {
		msg = fmt.Sprintf("Completed with warnings! %s See %d errors in output.", msg, len(res.Errors))
	}
	fmt.Println(msg)

	if len(res.OutputFiles) > 1 {
		fmt.Printf("Output split into %d files:\n", len(res.OutputFiles))
	}
	for _, f := range res.OutputFiles {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		fmt.Printf("- %s\n", abs)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.Flags().StringVarP(&targetDir, "target-dir", "t", ".", "Directory to scan for code files")
	RootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory to save the output file")
	RootCmd.Flags().StringVar(&configPath, "config", settings.DefaultFileName, "Settings file to load (created with defaults if absent)")
	RootCmd.Flags().StringSliceVar(&extensions, "extensions", nil, "File extensions to include (replaces the configured set)")
	RootCmd.Flags().StringArrayVarP(&excludeFiles, "exclude-file", "e", nil, "Additional file to exclude (repeatable)")
	RootCmd.Flags().StringArrayVarP(&excludeDirs, "exclude-dir", "d", nil, "Additional directory to exclude (repeatable)")
	RootCmd.Flags().StringArrayVarP(&focusDirs, "focus-dir", "f", nil, "Only process files in these directories (repeatable)")
	RootCmd.Flags().IntVarP(&chunkSize, "chunk-size", "c", 0, "Maximum token size for each output chunk")
	RootCmd.Flags().BoolVar(&noSummary, "no-summary", false, "Disable project summary generation")
	RootCmd.Flags().BoolVar(&noDefaultExcludes, "no-default-excludes", false, "Drop configured excludes and use only command-line excludes")
	RootCmd.Flags().StringVarP(&singleFile, "single-file", "s", "", "Process only this single file")
	RootCmd.Flags().BoolVar(&respectGitignore, "respect-gitignore", false, "Skip paths matched by a .gitignore at the target root")
	RootCmd.Flags().StringVar(&tokenModel, "token-model", "", "Tiktoken model for exact token counts (default: 4 chars per token estimate)")
	RootCmd.Flags().BoolVar(&copyOutput, "copy", false, "Also copy the assembled document to the clipboard")
	RootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
