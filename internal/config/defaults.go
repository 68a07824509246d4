package config

import "github.com/dshills/docweave/internal/facts"

// buildDefault assembles the built-in configuration
func buildDefault() Config {
	return Config{
		Root:            ".",
		StorePath:       ".docweave/progress.json",
		FingerprintPath: ".docweave/fingerprint",
		BatchSize:       20,
		IncludeTests:    false,
		IncludeVendor:   false,
		Marker:          DefaultMarker,
		Templates:       map[string]string{},
		Recognizers:     defaultRecognizers(),
	}
}

// defaultRecognizers returns the built-in call-site classification tables
func defaultRecognizers() facts.RecognizerTable {
	return facts.RecognizerTable{
		IO: map[string][]string{
			"files": {
				"os.Open", "os.Create", "os.ReadFile", "os.WriteFile",
				"os.Remove", "os.Rename", "os.Mkdir", "os.ReadDir",
				"filepath.Walk", "filepath.WalkDir", "io.Copy",
			},
			"network": {
				"net.", "http.", "grpc.", "websocket.", "smtp.", "rpc.",
			},
			"database": {
				"sql.", "sqlx.", "gorm.", "pgx.", "badger.", "sqlite.",
				"redis.", "mongo.",
			},
			"queue": {
				"amqp.", "kafka.", "nats.", "pubsub.", "sqs.",
			},
			"accelerator": {
				"cuda.", "gorgonia.", "onnx.", "tensor.",
			},
		},
		Config: map[string][]string{
			"environment": {
				"os.Getenv", "os.LookupEnv", "os.Environ",
				"flag.", "pflag.",
			},
			"config-object": {
				"viper.New", "viper.Get", "viper.Set", "config.New",
				"config.Load", "config.Default",
			},
			"config-file": {
				"viper.ReadInConfig", "yaml.Unmarshal", "yaml.NewDecoder",
				"toml.Unmarshal", "json.NewDecoder",
			},
		},
		Concurrency: map[string][]string{
			"spawn": {
				"exec.Command", "exec.CommandContext", "os.StartProcess",
			},
			"async": {
				"errgroup.", "conc.", "sync.WaitGroup",
			},
			"lock": {
				"sync.Mutex", "sync.RWMutex", "sync.Once", "sync.Cond",
				"semaphore.",
			},
			"queue": {
				"sync.Pool",
			},
		},
	}
}
