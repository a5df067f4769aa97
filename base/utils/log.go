package utils

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Configure logging using env variables LOG_LEVEL and LOG_STYLE
func ConfigureLogging() {
	level, err := log.ParseLevel(Getenv("LOG_LEVEL", "INFO"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	style := strings.ToLower(Getenv("LOG_STYLE", "plain"))
	switch style {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
}

// Log returns an entry with key-value pairs as fields, e.g. Log("app", name, "count", 3).Info("msg")
func Log(args ...interface{}) *log.Entry {
	nArgs := len(args)
	fields := log.Fields{}
	if nArgs%2 != 0 {
		log.Warningf("Unable to accept odd (%d) arguments count in utils.Log method.", nArgs)
	} else {
		for i := 0; i < nArgs; i += 2 {
			key, ok := args[i].(string)
			if !ok {
				log.Warningf("Log field key %v is not a string", args[i])
				continue
			}
			fields[key] = args[i+1]
		}
	}
	return log.WithFields(fields)
}

func LogTrace(args ...interface{}) {
	logLevel(log.TraceLevel, args...)
}

func LogDebug(args ...interface{}) {
	logLevel(log.DebugLevel, args...)
}

func LogInfo(args ...interface{}) {
	logLevel(log.InfoLevel, args...)
}

func LogWarn(args ...interface{}) {
	logLevel(log.WarnLevel, args...)
}

func LogError(args ...interface{}) {
	logLevel(log.ErrorLevel, args...)
}

func LogFatal(args ...interface{}) {
	logLevel(log.FatalLevel, args...)
}

// trailing odd argument is the message
func logLevel(level log.Level, args ...interface{}) {
	if !log.IsLevelEnabled(level) {
		return
	}
	nArgs := len(args)
	switch {
	case nArgs == 0:
		log.StandardLogger().Log(level)
	case nArgs%2 == 0:
		Log(args...).Log(level)
	default:
		Log(args[:nArgs-1]...).Log(level, args[nArgs-1])
	}
}
