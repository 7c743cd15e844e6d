package session

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/drake/tally/internal/logging"
)

// clipboardWrite is replaced in tests; the real clipboard needs a
// display server.
var clipboardWrite = clipboard.WriteAll

// CopyCurrent copies the current operand to the system clipboard.
func (s *Session) CopyCurrent() error {
	current := s.calc.State().Current.String()
	if err := clipboardWrite(current); err != nil {
		logging.LogError(s.logger, "clipboard write failed", err)
		s.ui.Print(fmt.Sprintf("Copy failed: %v", err))
		return err
	}

	s.logger.Debug("copied", slog.String("value", current))
	s.ui.Print("Copied " + current)
	return nil
}
