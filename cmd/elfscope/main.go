package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/grafana/elfscope/pkg/elf32"
	"github.com/grafana/elfscope/pkg/readelf"
)

type params struct {
	files []string

	fileHeader     bool
	sectionHeaders bool
	programHeaders bool
	layout         bool
	hexDump        int
	check          bool
	extractHeader  string

	output          string
	configFile      string
	configExpandEnv bool
	parallelism     int
	parallelismSet  bool
	noMmap          bool
	decompress      bool
	metricsTextfile string
	verbose         bool
}

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var p params
	terminated := false

	app := kingpin.New("elfscope", "Display the structural layout of ELF32 files.").
		UsageWriter(stdout).
		ErrorWriter(stderr).
		Terminate(func(int) { terminated = true })
	app.Version(version.Print("elfscope"))
	app.HelpFlag.Short('H')

	app.Flag("file-header", "Display the ELF file header.").Short('h').BoolVar(&p.fileHeader)
	app.Flag("section-headers", "Display the section headers.").Short('S').BoolVar(&p.sectionHeaders)
	app.Flag("program-headers", "Display the program headers.").Short('l').BoolVar(&p.programHeaders)
	app.Flag("layout", "Display every segment and gap of the file ordered by offset.").BoolVar(&p.layout)
	app.Flag("hex-dump", "Dump the content of the section with the given index.").Short('x').Default("-1").IntVar(&p.hexDump)
	app.Flag("check", "Report overlapping structures and fail if there are any.").BoolVar(&p.check)
	app.Flag("extract-header", "Write the raw file header to the given path.").PlaceHolder("PATH").StringVar(&p.extractHeader)
	app.Flag("output", "Output format.").Short('o').EnumVar(&p.output, readelf.Formats...)
	app.Flag("config.file", "YAML configuration file.").StringVar(&p.configFile)
	app.Flag("config.expand-env", "Expand ${VAR} references in the configuration file.").BoolVar(&p.configExpandEnv)
	app.Flag("parallelism", "Number of section and program bodies read concurrently.").
		Action(func(*kingpin.ParseContext) error { p.parallelismSet = true; return nil }).
		IntVar(&p.parallelism)
	app.Flag("no-mmap", "Use buffered reads instead of mapping files into memory.").BoolVar(&p.noMmap)
	app.Flag("decompress", "Transparently decompress gzip and zstd wrapped files.").BoolVar(&p.decompress)
	app.Flag("metrics.textfile", "Write decoder metrics in the Prometheus text format to the given path.").PlaceHolder("PATH").StringVar(&p.metricsTextfile)
	app.Flag("verbose", "Enable verbose logging.").Short('v').BoolVar(&p.verbose)
	app.Arg("file", "ELF files to inspect.").Required().ExistingFilesVar(&p.files)

	_, err := app.Parse(args)
	if terminated {
		return exitOK
	}
	if err != nil {
		app.Errorf("%s, try --help", err)
		return exitUsage
	}
	if p.extractHeader != "" && len(p.files) > 1 {
		app.Errorf("--extract-header takes a single file, got %d", len(p.files))
		return exitUsage
	}

	c, err := loadConfig(&p)
	if err != nil {
		app.Errorf("%s", err)
		return exitUsage
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	if !p.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	ctx := withOutput(context.Background(), stdout)

	reg := prometheus.NewRegistry()
	metrics := elf32.NewMetrics(reg)

	var failed error
	for _, path := range p.files {
		opts := []elf32.Option{
			elf32.WithConfig(c.Decoder),
			elf32.WithLogger(log.With(logger, "file", path)),
			elf32.WithMetrics(metrics),
		}
		if err = inspect(ctx, &p, readelf.Format(c.Output), path, opts...); err != nil {
			failed = err
			break
		}
	}

	if p.metricsTextfile != "" {
		if err = prometheus.WriteToTextfile(p.metricsTextfile, reg); err != nil {
			level.Error(logger).Log("msg", "failed to write metrics", "path", p.metricsTextfile, "err", err)
			if failed == nil {
				failed = err
			}
		}
	}
	return checkError(stderr, failed)
}

func inspect(ctx context.Context, p *params, format readelf.Format, path string, opts ...elf32.Option) error {
	f, err := elf32.Open(path, opts...)
	if err != nil {
		return errors.Wrap(err, path)
	}
	if p.extractHeader != "" {
		if err = extractHeader(f, p.extractHeader); err != nil {
			return err
		}
	}

	printer := readelf.NewPrinter(output(ctx))
	if format != readelf.FormatText {
		return printer.Encode(format, readelf.NewDocument(path, f))
	}

	if len(p.files) > 1 {
		fmt.Fprintf(output(ctx), "\nFile: %s\n", path)
	}
	display := p.sectionHeaders || p.programHeaders || p.layout || p.hexDump >= 0 || p.check
	if p.fileHeader || !display {
		printer.FileHeader(f)
	}
	if p.sectionHeaders {
		printer.SectionHeaders(f)
	}
	if p.programHeaders {
		printer.ProgramHeaders(f)
	}
	if p.hexDump >= 0 {
		if err = printer.HexDump(f, p.hexDump); err != nil {
			return errors.Wrap(err, path)
		}
	}
	if p.layout {
		printer.Layout(path, f)
	}
	if p.check {
		return printer.Check(path, f)
	}
	return nil
}

func extractHeader(f *elf32.File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = f.ExtractHeader(out); err != nil {
		_ = out.Close()
		return errors.Wrap(err, "extract header")
	}
	return out.Close()
}

func checkError(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(w, "%s%v\n", color.RedString("error: "), err)
	return exitError
}

type contextKey uint8

const contextKeyOutput contextKey = iota

func withOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, contextKeyOutput, w)
}

func output(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(contextKeyOutput).(io.Writer); ok {
		return w
	}
	return os.Stdout
}
