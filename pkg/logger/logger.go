// Package logger описывает интерфейс логгера приложения и его реализации поверх slog, zap и logrus.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// Logger — минимальный интерфейс логирования, который используют все слои приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// New возвращает логгер по имени бэкенда ("slog", "zap" или "logrus").
func New(backend, mode string) (Logger, error) {
	switch strings.ToLower(backend) {
	case "", "slog":
		return NewSlogLogger(), nil
	case "zap":
		return NewZapLogger(mode)
	case "logrus":
		return NewLogrusLogger(os.Stderr, mode), nil
	default:
		return nil, fmt.Errorf("unknown logger backend: %s", backend)
	}
}

// SlogLogger пишет структурированные JSON-логи в stdout.
type SlogLogger struct {
	log *slog.Logger
}

func NewSlogLogger() *SlogLogger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &SlogLogger{log: slog.New(handler)}
}

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(err error, format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}

// ZapLogger — реализация поверх zap.SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger собирает zap-логгер: "prod" даёт JSON-вывод, иначе development-формат.
func NewZapLogger(mode string) (*ZapLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{sugar: zl.Sugar()}, nil
}

func (l *ZapLogger) Debugf(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Infof(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Warnf(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *ZapLogger) Errorf(err error, format string, args ...any) {
	l.sugar.Errorw(fmt.Sprintf(format, args...), "error", err)
}

// Sync сбрасывает буферы zap.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// LogrusLogger — текстовый логгер для CLI. В режиме "prod" пишет JSON и только Info и выше.
type LogrusLogger struct {
	log *logrus.Logger
}

func NewLogrusLogger(w io.Writer, mode string) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	switch strings.ToLower(mode) {
	case "prod", "production":
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}

	return &LogrusLogger{log: l}
}

func (l *LogrusLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *LogrusLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *LogrusLogger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *LogrusLogger) Errorf(err error, format string, args ...any) {
	l.log.WithError(err).Errorf(format, args...)
}

type nopLogger struct{}

// Nop возвращает логгер, который ничего не пишет.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}
