// Package api provides the HTTP client for the lawchat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// MULTIPART ENDPOINTS
// =============================================================================

// ChatVision submits a turn with a staged image. Same response shape as Chat.
func (c *Client) ChatVision(ctx context.Context, question, conversationID string, imageName, imageMIME string, image []byte) (*ChatResponse, error) {
	fields := map[string]string{"question": norm.NFC.String(question)}
	if conversationID != "" {
		fields["conversation_id"] = conversationID
	}

	var resp ChatResponse
	err := c.doMultipart(ctx, "/chat_vision", fields, filePart{
		field: "image",
		name:  imageName,
		mime:  imageMIME,
		data:  image,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadDocument sends a document for server-side parsing and indexing.
// The server supports pdf, docx, and txt; anything else comes back as a
// server error which the caller surfaces verbatim.
func (c *Client) UploadDocument(ctx context.Context, name, mimeType string, data []byte) (*UploadResponse, error) {
	var resp UploadResponse
	err := c.doMultipart(ctx, "/upload_document", nil, filePart{
		field: "file",
		name:  name,
		mime:  mimeType,
		data:  data,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Transcribe sends a completed voice recording for speech-to-text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (*TranscribeResponse, error) {
	var resp TranscribeResponse
	err := c.doMultipart(ctx, "/transcribe", nil, filePart{
		field: "audio",
		name:  "recording.wav",
		mime:  "audio/wav",
		data:  audio,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// =============================================================================
// MULTIPART PLUMBING
// =============================================================================

// filePart describes the single file carried by a multipart request.
type filePart struct {
	field string
	name  string
	mime  string
	data  []byte
}

// doMultipart issues a multipart/form-data request with optional text fields
// and exactly one file part, then decodes the JSON response.
func (c *Client) doMultipart(ctx context.Context, path string, fields map[string]string, file filePart, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build form", Cause: err}
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.name))
	if file.mime != "" {
		header.Set("Content-Type", file.mime)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build form", Cause: err}
	}
	if _, err := part.Write(file.data); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build form", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build form", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+path, &buf)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}
