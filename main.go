package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"
)

var Version string

// stderrMirrorHook copies error-and-above entries to stderr so operational
// failures are visible without opening the log file.
type stderrMirrorHook struct {
	out io.Writer
}

func (h *stderrMirrorHook) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel}
}

func (h *stderrMirrorHook) Fire(entry *log.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	_, err = h.out.Write([]byte(line))
	return err
}

func setupLogging() {
	// Findings go to stdout, so logs must not; append them to a file instead.
	logFile, err := os.OpenFile("unicodeguard.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Println("Failed to open error log file:", err)
		return
	}

	log.SetOutput(logFile)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.AddHook(&stderrMirrorHook{out: os.Stderr})
}

func main() {
	setupLogging()
	if _, exists := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME"); exists {
		log.Println("Starting in Lambda mode")
		lambda.Start(Handler)
	} else {
		log.Println("Starting in CLI mode")
		cli := &Cli{}
		if err := cli.Execute(); err != nil {
			log.Fatalf("Error executing command: %v", err)
		}
	}
}
