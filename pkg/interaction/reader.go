// pkg/interaction/reader.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ReadLine writes label to w and reads one trimmed line. A final line without
// a newline is returned together with io.EOF.
func ReadLine(ctx context.Context, reader *bufio.Reader, w io.Writer, label string) (string, error) {
	logger := otelzap.Ctx(ctx)
	logger.Debug("Prompting user for input", zap.String("label", label))

	_, _ = fmt.Fprint(w, label+": ")

	text, err := reader.ReadString('\n')
	value := strings.TrimSpace(text)
	if err != nil {
		if err != io.EOF {
			logger.Error("Failed to read user input", zap.Error(err))
		}
		return value, err
	}

	logger.Debug("User input received", zap.String("value", value))
	return value, nil
}
