package process

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRetryOnTransientError(t *testing.T) {
	stub := &stubProcessor{
		doc:  &documentaipb.Document{Text: "ok"},
		errs: []error{status.Error(codes.Unavailable, "try again")},
	}
	proc := NewRetryingProcessor(stub)

	doc, err := proc.Process(context.Background(), "p", []byte("pdf"), "application/pdf")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if doc.GetText() != "ok" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", stub.calls)
	}
}

func TestNoRetryOnPermanentError(t *testing.T) {
	permanent := status.Error(codes.InvalidArgument, "bad request")
	stub := &stubProcessor{errs: []error{permanent, nil}}
	proc := NewRetryingProcessor(stub)

	_, err := proc.Process(context.Background(), "p", []byte("pdf"), "application/pdf")
	if err == nil {
		t.Fatalf("expected error")
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 call, got %d", stub.calls)
	}
}

func TestNoRetryOnDeadline(t *testing.T) {
	stub := &stubProcessor{errs: []error{status.Error(codes.DeadlineExceeded, "too slow"), nil}}
	proc := NewRetryingProcessor(stub)

	_, err := proc.Process(context.Background(), "p", []byte("pdf"), "application/pdf")
	if err == nil {
		t.Fatalf("expected error")
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 call, got %d", stub.calls)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	stub := &stubProcessor{errs: []error{status.Error(codes.Unavailable, "try again"), nil}}
	proc := NewRetryingProcessor(stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := proc.Process(ctx, "p", []byte("pdf"), "application/pdf")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 call, got %d", stub.calls)
	}
}

func TestTransientUpstreamClassification(t *testing.T) {
	if transientUpstream(nil) {
		t.Fatalf("nil error is not transient")
	}
	if transientUpstream(context.DeadlineExceeded) {
		t.Fatalf("deadline is not transient")
	}
	if !transientUpstream(status.Error(codes.ResourceExhausted, "quota")) {
		t.Fatalf("resource exhausted is transient")
	}
	if !transientUpstream(errors.New("read tcp: connection reset by peer")) {
		t.Fatalf("connection reset is transient")
	}
	if transientUpstream(errors.New("some permanent failure")) {
		t.Fatalf("unknown errors are not transient")
	}
}
