package utils

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

type TestLogHook struct {
	LogEntries    []log.Entry
	LevelsToStore []log.Level
	mu            sync.Mutex
}

func (t *TestLogHook) Levels() []log.Level {
	return t.LevelsToStore
}

func (t *TestLogHook) Fire(entry *log.Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.LogEntries = append(t.LogEntries, *entry)
	return nil
}

// Messages returns messages of stored entries in order
func (t *TestLogHook) Messages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs := make([]string, 0, len(t.LogEntries))
	for _, e := range t.LogEntries {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// FindEntry returns first entry with given message, nil if not found
func (t *TestLogHook) FindEntry(message string) *log.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.LogEntries {
		if t.LogEntries[i].Message == message {
			return &t.LogEntries[i]
		}
	}
	return nil
}

func NewTestLogHook(levelsToStore ...log.Level) *TestLogHook {
	if len(levelsToStore) == 0 {
		levelsToStore = []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel, log.InfoLevel,
			log.DebugLevel, log.TraceLevel}
	}
	return &TestLogHook{LevelsToStore: levelsToStore}
}
