package process

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"docai-backend/internal/docai"
	"docai-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingProcessor struct {
	base docai.Processor
}

// NewRetryingProcessor wraps a processor with a single retry on transient
// upstream errors. Deadline overruns are never retried.
func NewRetryingProcessor(base docai.Processor) docai.Processor {
	if base == nil {
		return nil
	}
	return retryingProcessor{base: base}
}

func (r retryingProcessor) Process(ctx context.Context, processorName string, content []byte, mimeType string) (*documentaipb.Document, error) {
	doc, err := r.base.Process(ctx, processorName, content, mimeType)
	if err == nil || !transientUpstream(err) {
		return doc, err
	}

	telemetry.Warn("upstream.retry", map[string]any{
		"processor": processorName,
		"error":     err.Error(),
	})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return r.base.Process(ctx, processorName, content, mimeType)
}

func transientUpstream(err error) bool {
	if err == nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
			return true
		case codes.DeadlineExceeded:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout")
}
