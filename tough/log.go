package tough

import (
	"log"
	"os"
)

var logger = log.New(os.Stderr, "tough: ", log.LstdFlags)

// SetLogger replaces the logger receiving simulator convention warnings,
// such as cells without connections
func SetLogger(l *log.Logger) {
	logger = l
}
