package helpers

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/pkg/response"
)

// NewLogger creates a configured Logrus logger. Development gets coloured
// text at debug level, everything else JSON at info. Every entry carries the
// app name so the email worker and API can share a log stream.
func NewLogger(appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.AddHook(staticFields{"app": appName})
	logger.WithField("env", env).Info("logger initialized")
	return logger
}

// staticFields adds fixed fields to entries that do not set them already.
type staticFields logrus.Fields

func (staticFields) Levels() []logrus.Level { return logrus.AllLevels }

func (f staticFields) Fire(e *logrus.Entry) error {
	for k, v := range f {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}

// RequestFields returns the fields that tie a log line to an HTTP request.
func RequestFields(c *gin.Context) logrus.Fields {
	fields := logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}
	if id := c.GetString(response.RequestIDKey); id != "" {
		fields["request_id"] = id
	}
	if uid := c.GetString("userID"); uid != "" {
		fields["user_id"] = uid
	}
	return fields
}
