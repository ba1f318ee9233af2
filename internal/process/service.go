package process

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"docai-backend/internal/docai"
	"docai-backend/internal/extract"
	"docai-backend/internal/shared/telemetry"
)

// Kind selects which preconfigured processor handles a request.
type Kind string

const (
	KindForm Kind = "form"
	KindBank Kind = "bank"
)

// ObjectFetcher reads a remote object by its storage path.
type ObjectFetcher interface {
	Fetch(ctx context.Context, storagePath string) ([]byte, error)
}

// Service runs the relay pipeline: validate, fetch, process, project.
type Service struct {
	Objects   ObjectFetcher
	Processor docai.Processor

	// Fully qualified processor resource names; empty means unconfigured.
	FormProcessor string
	BankProcessor string

	Timeout time.Duration
}

// Input is one document to process, either by storage path or by content.
type Input struct {
	StoragePath string
	Content     []byte
	MimeType    string
}

// ProcessForm runs the form processor and projects its field set.
func (s *Service) ProcessForm(ctx context.Context, in Input) (extract.FormData, error) {
	doc, err := s.process(ctx, KindForm, in)
	if err != nil {
		return extract.FormData{}, err
	}
	return extract.FormDataFrom(doc), nil
}

// ProcessBank runs the bank-statement processor and projects transactions
// and daily balances.
func (s *Service) ProcessBank(ctx context.Context, in Input) (extract.BankStatement, error) {
	doc, err := s.process(ctx, KindBank, in)
	if err != nil {
		return extract.BankStatement{}, err
	}
	return extract.BankStatementFrom(doc), nil
}

func (s *Service) process(ctx context.Context, kind Kind, in Input) (*documentaipb.Document, error) {
	mimeType := strings.TrimSpace(in.MimeType)
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	if !SupportedMimeType(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMime, mimeType)
	}

	processorName, err := s.processorFor(kind)
	if err != nil {
		return nil, err
	}

	content := in.Content
	if len(content) == 0 {
		storagePath := strings.TrimSpace(in.StoragePath)
		if storagePath == "" {
			return nil, fmt.Errorf("%w: storage_path or file content required", ErrInvalidInput)
		}
		content, err = s.Objects.Fetch(ctx, storagePath)
		if err != nil {
			return nil, err
		}
		telemetry.Debug("object.fetched", map[string]any{
			"storage_path": storagePath,
			"size_bytes":   len(content),
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	start := time.Now()
	doc, err := s.Processor.Process(callCtx, processorName, content, mimeType)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: response carried no document", ErrUpstream)
	}

	telemetry.Info("document.processed", map[string]any{
		"processor":   processorName,
		"kind":        string(kind),
		"mime_type":   mimeType,
		"size_bytes":  len(content),
		"text_chars":  len(doc.GetText()),
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return doc, nil
}

func (s *Service) processorFor(kind Kind) (string, error) {
	var name string
	switch kind {
	case KindForm:
		name = s.FormProcessor
	case KindBank:
		name = s.BankProcessor
	default:
		return "", fmt.Errorf("%w: unknown processor kind %q", ErrInvalidInput, kind)
	}
	if name == "" {
		return "", fmt.Errorf("%w: processor not configured for type %q", ErrInvalidInput, kind)
	}
	return name, nil
}

func (s *Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return 120 * time.Second
}

// mapUpstreamError folds Document AI call failures into the relay's error
// taxonomy.
func mapUpstreamError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.DeadlineExceeded:
			return fmt.Errorf("%w: %s", ErrUpstreamTimeout, st.Message())
		case codes.InvalidArgument:
			return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
