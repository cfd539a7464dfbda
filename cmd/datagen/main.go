package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"ban/healthsense/internal/dataset"
	"ban/healthsense/pkg/config"
	"ban/healthsense/pkg/logger"
)

const (
	sinkCSV   = "csv"
	sinkMySQL = "mysql"
)

// options 命令行参数，set 记录显式传入的参数名
type options struct {
	configPath string
	samples    int
	seed       int64
	out        string
	sinkKind   string
	dsn        string
	migrate    bool
	set        map[string]bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("datagen", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "配置文件路径，为空时使用默认值和环境变量")
	fs.IntVar(&opts.samples, "n", dataset.DefaultSamples, "样本数，未指定时使用 dataset.samples")
	fs.Int64Var(&opts.seed, "seed", dataset.DefaultSeed, "随机种子，未指定时使用 dataset.seed")
	fs.StringVar(&opts.out, "out", "", "CSV 输出路径，- 表示标准输出")
	fs.StringVar(&opts.sinkKind, "sink", sinkCSV, "输出类型：csv 或 mysql")
	fs.StringVar(&opts.dsn, "dsn", "", "MySQL DSN，覆盖 mysql.dsn")
	fs.BoolVar(&opts.migrate, "migrate", true, "mysql 输出时先建表")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	opts.apply(cfg)
	if err := cfg.ValidateDataset(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 日志走 stderr，stdout 留给 "-out -" 的 CSV
	zapLogger, err := logger.NewZapLoggerWithOutput(cfg.App.LogLevel, "stderr")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	sink, err := newSink(ctx, cfg, opts.sinkKind, opts.migrate)
	if err != nil {
		log.Fatalf("Failed to prepare sink: %v", err)
	}

	th := cfg.Dataset.Thresholds
	gen := dataset.NewGenerator(dataset.GeneratorConfig{
		Seed: cfg.Dataset.Seed,
		Thresholds: dataset.Thresholds{
			HeartRate:     th.HeartRate,
			BodyTemp:      th.BodyTemp,
			Accelerometer: th.Accelerometer,
		},
	})
	rows := gen.Generate(cfg.Dataset.Samples)

	if err := sink.Write(ctx, rows); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}

	sum := dataset.Summarize(rows)
	zapLogger.Infof(ctx, "Dataset generated: rows=%d, positives=%d, seed=%d, sink=%s",
		sum.Rows, sum.Positives, cfg.Dataset.Seed, sink.Location())

	// 标准输出被数据占用时不打印提示
	if sink.Location() != dataset.StdoutPath {
		fmt.Printf("Synthetic dataset saved as %s\n", sink.Location())
	}
}

// apply 显式传入的参数优先于配置，负数种子也合法
func (o *options) apply(cfg *config.Config) {
	if o.set["n"] {
		cfg.Dataset.Samples = o.samples
	}
	if o.set["seed"] {
		cfg.Dataset.Seed = o.seed
	}
	if o.set["out"] {
		cfg.Dataset.Output = o.out
	}
	if o.set["dsn"] {
		cfg.MySQL.DSN = o.dsn
	}
}

func newSink(ctx context.Context, cfg *config.Config, kind string, migrate bool) (dataset.Sink, error) {
	switch kind {
	case sinkCSV:
		return dataset.NewCSVSink(cfg.Dataset.Output), nil
	case sinkMySQL:
		db, err := dataset.OpenMySQL(cfg.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		sink := dataset.NewMySQLSink(db, cfg.Dataset.BatchSize)
		if migrate {
			if err := sink.Migrate(ctx); err != nil {
				return nil, err
			}
		}
		return sink, nil
	default:
		return nil, fmt.Errorf("unknown sink %q", kind)
	}
}
