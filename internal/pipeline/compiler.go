package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"callclean/internal/config"
	"callclean/internal/telemetry"
	"callclean/internal/transform"
	"callclean/sink"
	"callclean/sink/stdout"
	"callclean/source"
	"callclean/source/csv"
	"callclean/source/xlsx"
)

// Deps are the process-level collaborators a Runner reports to.
type Deps struct {
	Metrics *telemetry.Metrics
	Log     *slog.Logger
	Out     io.Writer // report destination; nil means stdout
}

// Compile builds a Runner from cfg: the source driver (named, or picked by
// file extension), the fixed cleaning steps and every configured sink.
func Compile(cfg config.Config, d Deps) (*Runner, error) {
	r := NewRunner(d.Metrics, d.Log)

	driver := cfg.Source.Driver
	if driver == "" {
		var err error
		if driver, err = source.DriverFor(cfg.Source.Path); err != nil {
			return nil, err
		}
	}
	src, err := source.NewAdapter(driver)
	if err != nil {
		return nil, err
	}
	switch driver {
	case "xlsx":
		err = src.Configure(xlsx.Config{Sheet: cfg.Source.Sheet})
	case "csv":
		err = src.Configure(csv.Config{Delimiter: cfg.Source.Delimiter})
	default:
		err = fmt.Errorf("no config block for source %q", driver)
	}
	if err != nil {
		return nil, err
	}
	r.SetSource(src)

	r.AddStep(transform.Default(transform.Options{UnmappedBool: cfg.Booleans.Unmapped})...)

	for _, name := range cfg.Sink.Drivers {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return nil, err
		}

		switch name {
		case "stdout":
			err = sDrv.Configure(stdout.Config{
				Format:  cfg.Sink.Format,
				MaxRows: cfg.Sink.MaxRows,
				Out:     d.Out,
			})
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return nil, err
		}
		r.AddSink(sDrv)
	}
	return r, nil
}
