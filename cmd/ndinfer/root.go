// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndarray/config"
	"github.com/katalvlaran/ndarray/construct"
	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/storage"
)

// rootFlags holds the command line values of the root command.
type rootFlags struct {
	configPath  string
	dtype       string
	minDepth    int
	maxDepth    int
	fortran     bool
	scalars     bool
	values      bool
	metricsFile string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:           "ndinfer [file|-]",
		Short:         "Infer the element type and shape of a nested document",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fl.StringVar(&f.dtype, "dtype", "", "force the element type (see 'ndinfer dtypes')")
	fl.IntVar(&f.minDepth, "min-depth", 0, "minimum number of dimensions (0: no bound)")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "maximum number of dimensions (0: no bound)")
	fl.BoolVar(&f.fortran, "fortran", false, "lay the array out column-major")
	fl.BoolVar(&f.scalars, "scalars", false, "accept scalar documents as 0-d arrays")
	fl.BoolVar(&f.values, "values", false, "print the array values")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newDTypesCmd())

	return cmd
}

func runInfer(cmd *cobra.Command, args []string, f rootFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("min-depth") {
		cfg.MinDepth = f.minDepth
	}
	if fl.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if fl.Changed("fortran") {
		cfg.FortranOrder = f.fortran
	}
	if fl.Changed("scalars") {
		cfg.AllowScalarConversion = f.scalars
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	var requested *dtype.DType
	if f.dtype != "" {
		dt, err := dtype.Parse(f.dtype)
		if err != nil {
			return err
		}
		requested = &dt
	}

	src, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	reg := prometheus.NewRegistry()
	engine := storage.NewEngine(append(cfg.EngineOptions(),
		storage.WithLogger(logger),
		storage.WithMetrics(storage.NewMetrics(reg)))...)
	builder := construct.New(engine, append(cfg.BuilderOptions(),
		construct.WithLogger(logger),
		construct.WithMetrics(construct.NewMetrics(reg)))...)

	a, buildErr := builder.FromAny(src, requested, cfg.MinDepth, cfg.MaxDepth)
	if f.metricsFile != "" {
		if err = prometheus.WriteToTextfile(f.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if buildErr != nil {
		return buildErr
	}

	return printArray(cmd.OutOrStdout(), a, f.values)
}

// printArray writes the summary lines for a.
func printArray(w io.Writer, a *storage.Array, values bool) error {
	if _, err := fmt.Fprintf(w, "dtype: %s (%s)\nndim:  %d\nshape: %v\n", a.DType(), a.DType().Kind(), a.NDim(), a.Shape()); err != nil {
		return err
	}
	if values {
		_, err := fmt.Fprintf(w, "values: %s\n", a)
		return err
	}
	return nil
}

// readDocument decodes the document named by args (stdin for none or "-").
func readDocument(cmd *cobra.Command, args []string) (any, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}
