package logging

import (
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var setupOnce sync.Once

// Setup configures the shared logrus instance. Safe to call multiple times;
// initialization happens only once.
func Setup(level string, toFile bool) {
	setupOnce.Do(func() {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			lvl = log.InfoLevel
		}
		log.SetLevel(lvl)
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})

		if toFile {
			log.SetOutput(&lumberjack.Logger{
				Filename:   "logs/main.log",
				MaxSize:    10, // MB
				MaxBackups: 5,
			})
		} else {
			log.SetOutput(os.Stdout)
		}
	})
}
