package utils

import (
    "io"
    "os"
    "strconv"
    "strings"

    "github.com/sirupsen/logrus"
    "gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

type appNameHook struct {
    appName string
}

// Levels implements logrus.Hook interface.
func (h *appNameHook) Levels() []logrus.Level {
    return logrus.AllLevels
}

// Fire implements logrus.Hook interface.
func (h *appNameHook) Fire(entry *logrus.Entry) error {
    entry.Message = "[" + h.appName + "] " + entry.Message
    return nil
}

// InitLogger configures the shared Logger from LOG_LEVEL, LOG_FILE and
// LOG_MAX_SIZE_MB.  When LOG_FILE is set, entries go to stdout and to a
// size-rotated file.  The returned closer flushes the file and is safe to
// call when no file was opened.
func InitLogger(appName string) io.Closer {
    var closer io.Closer = nopCloser{}
    Logger.SetOutput(os.Stdout)

    if path := os.Getenv("LOG_FILE"); path != "" {
        rotated := NewRotatingFile(path)
        Logger.SetOutput(io.MultiWriter(os.Stdout, rotated))
        closer = rotated
    }

    logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
    if logLevelStr == "" {
        logLevelStr = "info"
    }
    level, err := logrus.ParseLevel(logLevelStr)
    if err != nil {
        Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
        level = logrus.InfoLevel
    }
    Logger.SetLevel(level)

    Logger.SetFormatter(&logrus.TextFormatter{
        FullTimestamp: true,
    })

    Logger.AddHook(&appNameHook{appName})
    return closer
}

// NewRotatingFile opens a lumberjack writer at path.  Size comes from
// LOG_MAX_SIZE_MB (default 10).
func NewRotatingFile(path string) *lumberjack.Logger {
    size := 10
    if v := os.Getenv("LOG_MAX_SIZE_MB"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            size = n
        }
    }
    return &lumberjack.Logger{
        Filename:   path,
        MaxSize:    size,
        MaxBackups: 5,
        LocalTime:  true,
    }
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
