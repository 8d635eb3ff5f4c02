package lib

import (
	"encoding/json"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigureLogging sets the global zerolog level from LogLevel and points the
// global logger at stderr and, when LogFile is set, at a size-rotated log file
// as well. Zero sizes fall back to BaseDefaults.
func (bc BaseConfig) ConfigureLogging() error {
	level := zerolog.InfoLevel
	if bc.LogLevel != "" {
		var err error
		if level, err = zerolog.ParseLevel(bc.LogLevel); err != nil {
			return err
		}
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stderr
	if bc.LogFile != "" {
		defaults := BaseDefaults()
		if bc.LogMaxSize <= 0 {
			bc.LogMaxSize = defaults["log_max_size"].(int)
		}
		if bc.LogMaxBackups <= 0 {
			bc.LogMaxBackups = defaults["log_max_backups"].(int)
		}
		w = zerolog.MultiLevelWriter(os.Stderr, &lumberjack.Logger{
			Filename:   bc.LogFile,
			MaxSize:    bc.LogMaxSize,
			MaxBackups: bc.LogMaxBackups,
		})
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

func JsonLogFormatter(params gin.LogFormatterParams) string {
	logline := map[string]interface{}{
		"time":    params.TimeStamp.UTC().Format("2006-01-02T15:04:05.999"),
		"status":  params.StatusCode,
		"latency": params.Latency.String(),
		"client":  params.ClientIP,
		"method":  params.Method,
		"path":    params.Path,
	}
	if params.ErrorMessage != "" {
		logline["error"] = params.ErrorMessage
	}
	if len(params.Keys) > 0 {
		logline["context"] = params.Keys
	}
	b, _ := json.Marshal(logline)
	return string(b) + "\n"
}
