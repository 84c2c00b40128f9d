package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"sheetgen/core/config"
	"sheetgen/core/dataset"
	"sheetgen/core/schema"
	"sheetgen/feature/export/format"
	"sheetgen/feature/export/validate"
)

// SourceProvider reads one sheet of one workbook into a raw source. The
// excel reader is the production implementation; tests substitute their
// own.
type SourceProvider interface {
	Read(path, sheet string) (*dataset.Source, error)
}

// Options adjusts a single run. Zero values fall back to the
// configuration.
type Options struct {
	// Format overrides the configured output format.
	Format string
	// Compact drops indentation from the output.
	Compact bool
	// Scope overrides the export's configured scope.
	Scope string
	// SourceDir overrides the configured workbook directory.
	SourceDir string
	// OutputDir overrides the configured output directory.
	OutputDir string
	// ValidationReport, when set, is the path the validation report is
	// written to.
	ValidationReport string
	// DryRun converts and validates without writing output files.
	DryRun bool
}

// Result summarizes one converted export.
type Result struct {
	Export     string
	Records    int
	OutputPath string
	Problems   []string
}

// Service drives the conversion pipeline: read, merge, convert, validate,
// format, write.
type Service struct {
	cfg       *config.Config
	log       *zap.Logger
	registry  *schema.Registry
	processor *dataset.Processor
	engine    *validate.Engine
	provider  SourceProvider
}

// NewService wires the pipeline for the given configuration. Schema
// declarations are resolved eagerly; a broken declaration fails
// construction.
func NewService(cfg *config.Config, log *zap.Logger, provider SourceProvider) (*Service, error) {
	registry, problems := schema.NewRegistry(cfg.ObjectSchemas)
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid object schemas: %s", strings.Join(problems, "; "))
	}

	return &Service{
		cfg:       cfg,
		log:       log,
		registry:  registry,
		processor: dataset.NewProcessor(registry),
		engine:    validate.NewEngine(),
		provider:  provider,
	}, nil
}

// Engine exposes the validator engine so applications can register custom
// validators before running.
func (s *Service) Engine() *validate.Engine {
	return s.engine
}

// Build reads, merges and converts one export into a dataset without
// validating or writing it.
func (s *Service) Build(name string, opts Options) (*dataset.Dataset, error) {
	exp, ok := s.cfg.Exports[name]
	if !ok {
		return nil, fmt.Errorf("unknown export %q", name)
	}

	sourceDir := opts.SourceDir
	if sourceDir == "" {
		sourceDir = s.cfg.Input.SourceDir
	}

	sources := make([]*dataset.Source, 0, len(exp.Sources))
	for _, decl := range exp.Sources {
		src, err := s.provider.Read(filepath.Join(sourceDir, decl.File), decl.Sheet)
		if err != nil {
			return nil, fmt.Errorf("export %q: %w", name, err)
		}
		sources = append(sources, src)
	}

	for _, warning := range dataset.AdvisoryProblems(sources, &exp) {
		s.log.Warn("source schema mismatch",
			zap.String("export", name),
			zap.String("problem", warning))
	}

	merged, stats, err := dataset.Merge(sources, exp.PrimaryKey)
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", name, err)
	}
	if stats.Sources > 1 {
		s.log.Info("merged sources",
			zap.String("export", name),
			zap.Int("sources", stats.Sources),
			zap.Int("rows", stats.Rows),
			zap.Int("columns", stats.Columns))
	}

	exportScope := opts.Scope
	if exportScope == "" {
		exportScope = exp.Scope
	}

	ds, err := s.processor.Process(merged, &exp, exportScope)
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", name, err)
	}
	return ds, nil
}

// Run converts one export end to end and returns its result. Validation
// problems abort the run when stop_on_validation_error is set; otherwise
// they are logged and carried in the result.
func (s *Service) Run(name string, opts Options) (*Result, error) {
	ds, err := s.Build(name, opts)
	if err != nil {
		return nil, err
	}

	exp := s.cfg.Exports[name]
	problems, err := s.engine.Validate(ds, &exp)
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", name, err)
	}
	if len(problems) > 0 {
		if opts.ValidationReport != "" {
			entry := ReportEntry{Export: name, Problems: problems}
			if err := WriteValidationReport(opts.ValidationReport, []ReportEntry{entry}); err != nil {
				return nil, err
			}
		}
		for _, p := range problems {
			s.log.Warn("validation problem", zap.String("export", name), zap.String("problem", p))
		}
		if s.cfg.Defaults.StopOnValidationError {
			return nil, fmt.Errorf("export %q: %d validation problems", name, len(problems))
		}
	}

	result := &Result{Export: name, Records: ds.Len(), Problems: problems}
	if opts.DryRun {
		return result, nil
	}

	path, err := s.write(name, ds, opts)
	if err != nil {
		return nil, err
	}
	result.OutputPath = path

	s.log.Info("export written",
		zap.String("export", name),
		zap.Int("records", ds.Len()),
		zap.String("path", path))
	return result, nil
}

// RunAll converts every configured export in name order.
func (s *Service) RunAll(opts Options) ([]*Result, error) {
	var results []*Result
	var entries []ReportEntry

	for _, name := range s.cfg.ExportNames() {
		// The report accumulates across exports, so Run must not write
		// its own partial one.
		perExport := opts
		perExport.ValidationReport = ""

		result, err := s.Run(name, perExport)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if len(result.Problems) > 0 {
			entries = append(entries, ReportEntry{Export: name, Problems: result.Problems})
		}
	}

	if opts.ValidationReport != "" && len(entries) > 0 {
		if err := WriteValidationReport(opts.ValidationReport, entries); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (s *Service) write(name string, ds *dataset.Dataset, opts Options) (string, error) {
	formatName := opts.Format
	if formatName == "" {
		formatName = s.cfg.Output.Format
	}
	formatter, err := format.New(formatName, opts.Compact)
	if err != nil {
		return "", err
	}

	out, err := formatter.Format(ds, name)
	if err != nil {
		return "", fmt.Errorf("export %q: %w", name, err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = s.cfg.Input.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	path := filepath.Join(outputDir, format.OutputFilename(formatter, name))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
