package docai

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// Processor submits raw document bytes to a Document AI processor and
// returns the parsed document proto.
type Processor interface {
	Process(ctx context.Context, processorName string, content []byte, mimeType string) (*documentaipb.Document, error)
}

// Client implements Processor using the Document AI regional endpoint.
type Client struct {
	client *documentai.DocumentProcessorClient
}

// NewClient connects to the Document AI service for the given location
// using the host's ambient credentials.
func NewClient(ctx context.Context, location string) (*Client, error) {
	if location == "" {
		return nil, fmt.Errorf("document ai location is required")
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	client, err := documentai.NewDocumentProcessorClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("document ai client: %w", err)
	}
	return &Client{client: client}, nil
}

// Process runs a synchronous process request against the named processor.
func (c *Client) Process(ctx context.Context, processorName string, content []byte, mimeType string) (*documentaipb.Document, error) {
	req := &documentaipb.ProcessRequest{
		Name: processorName,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
		SkipHumanReview: true,
	}

	resp, err := c.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("process document: %w", err)
	}
	return resp.GetDocument(), nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// ProcessorName builds the fully qualified processor resource name.
func ProcessorName(projectID, location, processorID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", projectID, location, processorID)
}
