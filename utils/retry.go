package utils

import (
	"errors"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

const RETRY_LIMIT int = 3

var RetryInterval = 2 * time.Second

// Retry runs attempt until it succeeds, returns an error matching exempt,
// or RETRY_LIMIT attempts have failed.
func Retry(attempt func() error, exempt error) error {
	var err error
	for i := 0; i < RETRY_LIMIT; i++ {
		err = attempt()
		if err == nil {
			return nil
		}
		if exempt != nil && errors.Is(err, exempt) {
			return err
		}
		pc, file, line, ok := runtime.Caller(1)
		if ok {
			log.Errorf("%s Called from %s, line #%d, func: %v", err,
				file, line, runtime.FuncForPC(pc).Name())
		}
		if i < RETRY_LIMIT-1 {
			time.Sleep(RetryInterval)
		}
	}
	return err
}
