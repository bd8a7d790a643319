package notify

import "log/slog"

// Notifier receives the user-facing success/error toasts the controllers
// emit. The UI layer decides how to render them.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier renders notifications through a slog.Logger.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info(message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.Error(message)
}
