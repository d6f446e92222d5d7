package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Output
	outputFile    string
	indentWidth   int
	pdfOutputFile string
	clipboardCopy bool

	// Filtering (mode dir only)
	excludePatterns  string
	respectGitignore bool

	// Invocation
	strictArgs      bool
	interactiveMode bool

	// Diagnostics
	verbose  bool
	logLevel string

	settingsFile string // Optional settings file for the tool itself
)

// version is the application version, set via ldflags.
var version string = "dev"

// appFs is the filesystem every stage reads from and writes to.
var appFs afero.Fs = afero.NewOsFs()

const usageText = "Usage: linealign <config_file> <config_id>"

var rootCmd = &cobra.Command{
	Use:   "linealign <config_file> <config_id>",
	Short: "Linealign merges parallel text files line by line into one JSON document.",
	Long: `Linealign reads a numbered entry from a YAML configuration file, collects the
files it names (a directory or an explicit list), and writes output.json with
one object per line index mapping each file's index to its line at that index.`,
	Version: version,
	// Argument count is checked in runRoot so a malformed call can print usage
	// and still exit cleanly.
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Flags go before the positionals, so a negative ID such as -1 is an
	// argument rather than a shorthand flag.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default is $HOME/.config/linealign/linealign.{toml,yaml,json})")

	// Output
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", defaultOutputFile, "File the JSON document is written to")
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	rootCmd.Flags().IntVar(&indentWidth, "indent", 4, "Spaces per indentation level in the JSON output (0 for compact)")
	viper.BindPFlag("indent", rootCmd.Flags().Lookup("indent"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Also save the aligned lines as a side-by-side PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolVarP(&clipboardCopy, "clipboard", "c", false, "Also copy the JSON document to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))

	// Filtering
	rootCmd.Flags().StringVarP(&excludePatterns, "exclude", "e", "", "Patterns to exclude in mode dir (comma-separated, e.g. *.bak,*.tmp)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().BoolVar(&respectGitignore, "gitignore", false, "Respect a .gitignore file in the directory listed by mode dir")
	viper.BindPFlag("gitignore", rootCmd.Flags().Lookup("gitignore"))

	// Invocation
	rootCmd.Flags().BoolVar(&strictArgs, "strict", false, "Fail instead of printing usage when the argument count is wrong")
	viper.BindPFlag("strict", rootCmd.Flags().Lookup("strict"))
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the configuration ID with a fuzzy finder when it is not given")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	// Diagnostics
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every pipeline step to stderr")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in the settings file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load() // .env in the working directory is optional

	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "linealign"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("linealign")
	}

	viper.SetEnvPrefix("LINEALIGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match LINEALIGN_*

	settingsErr := viper.ReadInConfig()

	// Level settings may come from the file just read.
	logger = newLogger(os.Stderr, viper.GetString("log_level"), viper.GetBool("verbose"))

	if settingsErr == nil {
		logger.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using settings file")
		return
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(settingsErr, &notFound) {
		logger.Debug().Msg("No settings file found, using defaults and flags")
		return
	}
	logger.Warn().Err(settingsErr).Msg("Error reading settings file")
}

// runRoot validates the invocation, runs the pipeline and writes the results.
func runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	interactive := viper.GetBool("interactive")
	if len(args) != 2 && !(interactive && len(args) == 1) {
		fmt.Fprintln(out, usageText)
		if viper.GetBool("strict") {
			return fmt.Errorf("expected 2 arguments, got %d", len(args))
		}
		return nil
	}

	configFile, err := resolveConfigPath(appFs, args[0])
	if err != nil {
		return err
	}

	var configID int
	if len(args) == 2 {
		configID, err = parseConfigID(args[1])
		if err != nil {
			return err
		}
	} else {
		doc, err := loadConfigDocument(appFs, configFile)
		if err != nil {
			return err
		}
		configID, err = pickConfigID(doc)
		if errors.Is(err, errSelectionAborted) {
			fmt.Fprintln(out, "Interactive selection aborted.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	filter := fileFilter{
		Exclude:   parsePatterns(viper.GetString("exclude")),
		Gitignore: viper.GetBool("gitignore"),
	}
	result, err := runPipeline(appFs, configFile, configID, filter)
	if err != nil {
		return err
	}

	data, err := encodeResult(result, viper.GetInt("indent"))
	if err != nil {
		return err
	}
	target := viper.GetString("output")
	if target == "" {
		target = defaultOutputFile
	}
	if err := writeFileAtomic(appFs, target, data); err != nil {
		return err
	}
	fmt.Fprintf(out, "Output written to %s\n", target)

	if pdfPath := viper.GetString("pdf"); pdfPath != "" {
		if err := generatePDF(appFs, result, pdfPath); err != nil {
			return err
		}
	}
	if viper.GetBool("clipboard") {
		copyToClipboard(data)
	}
	return nil
}

// resolveConfigPath makes p absolute and, on the OS filesystem, follows
// symlinks so relative entry paths resolve next to the real file. A path that
// cannot be evaluated (a missing file, say) is returned as the absolute path,
// leaving the not-found error to loadConfig.
func resolveConfigPath(fsys afero.Fs, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	if _, ok := fsys.(*afero.OsFs); !ok {
		return abs, nil
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	if resolved != abs {
		logger.Debug().Str("link", abs).Str("target", resolved).Msg("Resolved configuration file symlink")
	}
	return resolved, nil
}

// parseConfigID parses the configuration ID argument.
func parseConfigID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidConfigID, s)
	}
	return id, nil
}

// runPipeline loads the configuration entry and aligns the files it names.
// Relative paths in the entry are resolved against the directory holding
// configFile, which must already be absolute.
func runPipeline(fsys afero.Fs, configFile string, configID int, filter fileFilter) (*Result, error) {
	entry, err := loadConfig(fsys, configFile, configID)
	if err != nil {
		return nil, err
	}

	files, err := enumerateFiles(fsys, entry, filepath.Dir(configFile), filter)
	if err != nil {
		return nil, err
	}

	fileLines, err := loadLines(fsys, files)
	if err != nil {
		return nil, err
	}

	aligned, err := alignLines(fileLines)
	if err != nil {
		return nil, fmt.Errorf("configuration %d: %w", configID, err)
	}
	logger.Info().Int("files", len(files)).Int("lines", len(aligned)).Msg("Aligned files")

	return &Result{
		ConfigFile:        configFile,
		ConfigurationID:   configID,
		ConfigurationData: entry,
		Out:               aligned,
		Files:             files,
	}, nil
}

func main() {
	// initConfig() is called via cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
