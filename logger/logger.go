package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/file"
)

// Log is the global logger instance. Initialized lazily to a console logger;
// Init replaces it with the fully configured one.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(consoleFormatter(false))
}

func fieldOrder() []string {
	return []string{
		common.LogFieldMatrixName,
		common.LogFieldConfiguration,
		common.LogFieldTaskName,
		common.LogFieldStepName,
		common.LogFieldHookName,
	}
}

func consoleFormatter(verbose bool) *Formatter {
	display := ShowAboveWarn
	if verbose {
		display = ShowAll
	}
	return &Formatter{
		TimestampFormat:        "15:04:05",
		NoColors:               false,
		DisplayLevelName:       display,
		DisableCaller:          true,
		FieldsDisplayWithOrder: fieldOrder(),
	}
}

// Init configures the global logger. When outputPath is non-empty, entries are
// additionally written to a daily-rotated file under that directory.
func Init(outputPath string, verbose bool) error {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetOutput(os.Stdout)
	log.SetFormatter(consoleFormatter(verbose))

	if outputPath != "" {
		if err := file.CreateDir(outputPath); err != nil {
			return fmt.Errorf("failed to create log output directory %s: %w", outputPath, err)
		}
		logFile := filepath.Join(outputPath, common.AppName+".log")

		writer, err := rotatelogs.New(
			logFile+".%Y%m%d",
			rotatelogs.WithLinkName(logFile),
			rotatelogs.WithMaxAge(7*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			return fmt.Errorf("failed to initialize log rotation for %s: %w", logFile, err)
		}

		fileFormatter := &Formatter{
			TimestampFormat:        "2006-01-02 15:04:05.000 MST",
			NoColors:               true,
			DisplayLevelName:       ShowAll,
			FieldsDisplayWithOrder: fieldOrder(),
			DisableCaller:          false,
			CustomCallerFormatter: func(frame *runtime.Frame) string {
				return fmt.Sprintf("(%s:%d)", filepath.Base(frame.File), frame.Line)
			},
		}

		writers := lfshook.WriterMap{}
		for _, level := range logrus.AllLevels {
			if log.IsLevelEnabled(level) {
				writers[level] = writer
			}
		}
		log.SetReportCaller(true)
		log.Hooks.Add(lfshook.NewHook(writers, fileFormatter))
	}

	Log = log
	return nil
}

// NewTestLogger returns a logger entry writing to the given sink, for tests.
func NewTestLogger(sink io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(sink)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&Formatter{
		DisableTimestamp:       true,
		NoColors:               true,
		DisableCaller:          true,
		FieldsDisplayWithOrder: fieldOrder(),
	})
	return logrus.NewEntry(log)
}
