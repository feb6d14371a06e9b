package backend

import (
	"context"
	"io"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

// GetClientDocuments lists every document stored against a client.
func (c *Client) GetClientDocuments(ctx context.Context, clientID string) ([]models.Document, error) {
	if err := validID(clientID); err != nil {
		return nil, err
	}
	var docs []models.Document
	err := c.getJSON(ctx, "/api/v1/documents/client/"+clientID, nil, &docs)
	return docs, err
}

func (c *Client) GetCessionDocuments(ctx context.Context, cessionID string) ([]models.Document, error) {
	if err := validID(cessionID); err != nil {
		return nil, err
	}
	var docs []models.Document
	err := c.getJSON(ctx, "/api/v1/documents/cession/"+cessionID, nil, &docs)
	return docs, err
}

// UploadClientDocument stores a scanned file against a client under one
// document type. The type travels in the path; the form carries only
// the file part.
func (c *Client) UploadClientDocument(ctx context.Context, clientID, documentType, fileName string, file io.Reader) (*models.Document, error) {
	if err := validID(clientID); err != nil {
		return nil, err
	}
	var doc models.Document
	if err := c.upload(ctx, "/api/v1/documents/client/"+clientID+"/"+documentType, nil, "file", fileName, file, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UploadSpecificDocument is the upload variant that carries the
// document type and the client's number as form fields instead of path
// segments. The client number is left out when unknown.
func (c *Client) UploadSpecificDocument(ctx context.Context, clientID, clientNumber, documentType, fileName string, file io.Reader) (*models.Document, error) {
	if err := validID(clientID); err != nil {
		return nil, err
	}
	fields := map[string]string{"documentType": documentType}
	if clientNumber != "" {
		fields["clientNumber"] = clientNumber
	}

	var doc models.Document
	if err := c.upload(ctx, "/api/v1/documents/client/"+clientID+"/specific", fields, "file", fileName, file, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UploadDocument stores a document against any entity, typically a
// cession. The target is named by the entityId form field.
func (c *Client) UploadDocument(ctx context.Context, entityID, documentType, fileName string, file io.Reader) (*models.Document, error) {
	if err := validID(entityID); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"type":     documentType,
		"entityId": entityID,
	}

	var doc models.Document
	if err := c.upload(ctx, "/api/v1/documents/upload", fields, "file", fileName, file, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DownloadDocument fetches a document's bytes together with the
// content type to pass through to the browser.
func (c *Client) DownloadDocument(ctx context.Context, id string) ([]byte, string, error) {
	if err := validID(id); err != nil {
		return nil, "", err
	}
	return c.getRaw(ctx, "/api/v1/documents/"+id)
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/documents/"+id, nil)
}
