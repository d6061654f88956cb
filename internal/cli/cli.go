package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/autobrr/go-mkvdemux/internal/mediainfo"
)

const (
	exitOK    = 0
	exitError = 1
)

type Options struct {
	Output      string
	LogFile     string
	Bom         bool
	Verbose     bool
	Analyze     mediainfo.AnalyzeOptions
	CoreOptions []CoreOption
}

type CoreOption struct {
	Name  string
	Value string
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}

	program := programName(args[0])
	opts := Options{}
	files := make([]string, 0)

	for i := 1; i < len(args); i++ {
		original := args[i]
		normalized := normalizeArg(original)

		switch {
		case normalized == "--help" || normalized == "-h":
			Help(program, stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--help-"):
			return helpTopic(normalized, program, stdout)
		case strings.HasPrefix(normalized, "--output="):
			if value, ok := valueAfterEqual(original); ok {
				opts.Output = value
			} else {
				HelpOutput(program, stdout)
				return exitError
			}
		case strings.HasPrefix(normalized, "--output"):
			files = append(files, original)
		case strings.HasPrefix(normalized, "--logfile="):
			opts.LogFile, _ = valueAfterEqual(original)
		case normalized == "--bom":
			opts.Bom = true
		case normalized == "--verbose" || normalized == "-v":
			opts.Verbose = true
		case normalized == "--version":
			Version(stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--"):
			if normalized == "--" {
				continue
			}
			name, value := parseCoreOption(normalized, original)
			if name == "" {
				continue
			}
			opts.CoreOptions = append(opts.CoreOptions, CoreOption{Name: name, Value: value})
		default:
			files = append(files, original)
		}
	}

	if len(files) == 0 {
		return Usage(program, stdout)
	}

	if err := applyCoreOptions(&opts.Analyze, opts.CoreOptions); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}
	opts.Analyze.Logger = newLogger(stderr, opts.Verbose)

	if opts.Bom {
		writeBOM(stdout, stderr)
	}

	output, filesCount, err := runCore(opts, files)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}

	if output != "" {
		fmt.Fprintln(stdout, output)
	}

	if opts.LogFile != "" {
		if err := writeLogFile(opts.LogFile, output, opts.Bom); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
	}

	if filesCount > 0 {
		return exitOK
	}

	return exitError
}

// applyCoreOptions maps --Name[=Value] options onto the analysis options.
// Flags without a value arrive as "1".
func applyCoreOptions(analyze *mediainfo.AnalyzeOptions, options []CoreOption) error {
	for _, option := range options {
		switch option.Name {
		case "audio":
			analyze.ExtractAudio = isTrue(option.Value)
		case "singlepass":
			analyze.SinglePass = isTrue(option.Value)
		case "strict":
			if isTrue(option.Value) {
				analyze.FramePolicy = mediainfo.FrameErrorFail
			} else {
				analyze.FramePolicy = mediainfo.FrameErrorStop
			}
		case "framepolicy":
			policy, err := mediainfo.ParseFrameErrorPolicy(option.Value)
			if err != nil {
				return err
			}
			analyze.FramePolicy = policy
		default:
			return fmt.Errorf("unknown option: --%s", option.Name)
		}
	}
	return nil
}

func isTrue(value string) bool {
	switch strings.ToLower(value) {
	case "0", "false", "no", "off":
		return false
	}
	return true
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func helpTopic(normalized, program string, stdout io.Writer) int {
	switch normalized {
	case "--help-output":
		HelpOutput(program, stdout)
	default:
		fmt.Fprintln(stdout, "No help available yet")
	}

	return exitOK
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func normalizeArg(arg string) string {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		eq = len(arg)
	}

	lower := strings.ToLower(arg[:eq])
	return lower + arg[eq:]
}

func valueAfterEqual(arg string) (string, bool) {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		return "", false
	}
	return arg[eq+1:], true
}

func parseCoreOption(normalized, original string) (string, string) {
	eq := strings.IndexByte(normalized, '=')
	if eq == -1 {
		name := strings.TrimPrefix(normalized, "--")
		return name, "1"
	}

	name := strings.TrimPrefix(normalized[:eq], "--")
	return name, original[eq+1:]
}

func writeBOM(stdout, stderr io.Writer) {
	if runtime.GOOS != "windows" {
		return
	}

	bom := []byte{0xEF, 0xBB, 0xBF}
	_, _ = stdout.Write(bom)
	_, _ = stderr.Write(bom)
}

func writeLogFile(path, output string, includeBOM bool) error {
	data := []byte(output)
	if includeBOM && runtime.GOOS == "windows" {
		data = append([]byte{0xEF, 0xBB, 0xBF}, data...)
	}

	return os.WriteFile(path, data, 0644)
}

func runCore(opts Options, files []string) (string, int, error) {
	var render func([]mediainfo.Report) string
	switch strings.ToUpper(opts.Output) {
	case "", "TEXT":
		render = mediainfo.RenderText
	case "JSON":
		render = mediainfo.RenderJSON
	case "DEBUG":
		render = mediainfo.RenderDebug
	default:
		return "", 0, fmt.Errorf("output format not implemented: %s", opts.Output)
	}

	reports, count, err := mediainfo.AnalyzeFilesWithOptions(files, opts.Analyze)
	if err != nil {
		return "", 0, err
	}
	return render(reports), count, nil
}
