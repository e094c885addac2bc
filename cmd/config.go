package main

import "time"

type Config struct {
	BufferSize           int           `env:"BUFFER_SIZE,required=true"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	MaxContentLength     int           `env:"MAX_CONTENT_LENGTH,default=10000"`
	SearchLimit          int           `env:"SEARCH_LIMIT,default=20"`
	AllowedOrigin        string        `env:"ALLOWED_ORIGIN,default=*"`
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	DebugPort            *int          `env:"DEBUG_PORT"`
}
