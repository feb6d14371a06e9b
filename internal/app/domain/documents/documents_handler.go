package documents

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/domain"
)

type DocumentsHandlers struct {
	*domain.BaseHandler
}

func NewDocumentsHandlers(base *domain.BaseHandler) *DocumentsHandlers {
	return &DocumentsHandlers{BaseHandler: base}
}

// UploadClientDocumentHandler forwards a scanned file to the backend.
func (h *DocumentsHandlers) UploadClientDocumentHandler(c *gin.Context) {
	clientID := c.Param("id")
	documentType := c.PostForm("documentType")
	if documentType == "" {
		documentType = "other"
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.Notifier.Error(h.I18n.T("errors.generic", nil))
		c.Redirect(http.StatusSeeOther, "/clients/"+clientID)
		return
	}
	defer file.Close()

	// With the client number in hand the upload goes through the
	// field-based variant; otherwise the type rides in the path.
	if clientNumber := c.PostForm("clientNumber"); clientNumber != "" {
		_, err = h.Backend.UploadSpecificDocument(c.Request.Context(), clientID, clientNumber, documentType, header.Filename, file)
	} else {
		_, err = h.Backend.UploadClientDocument(c.Request.Context(), clientID, documentType, header.Filename, file)
	}
	if err != nil {
		h.HandleError(c, err, "/clients/"+clientID)
		return
	}

	h.Logger.Info("Document uploaded",
		zap.String("client_id", clientID),
		zap.String("document_type", documentType),
		zap.String("file_name", header.Filename))
	c.Redirect(http.StatusSeeOther, "/clients/"+clientID)
}

// UploadCessionDocumentHandler stores a scanned file against a
// cession, typically the signed contract.
func (h *DocumentsHandlers) UploadCessionDocumentHandler(c *gin.Context) {
	cessionID := c.Param("id")
	documentType := c.PostForm("documentType")
	if documentType == "" {
		documentType = "contract"
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.Notifier.Error(h.I18n.T("errors.generic", nil))
		c.Redirect(http.StatusSeeOther, "/cessions/"+cessionID)
		return
	}
	defer file.Close()

	_, err = h.Backend.UploadDocument(c.Request.Context(), cessionID, documentType, header.Filename, file)
	if err != nil {
		h.HandleError(c, err, "/cessions/"+cessionID)
		return
	}

	h.Logger.Info("Document uploaded",
		zap.String("cession_id", cessionID),
		zap.String("document_type", documentType),
		zap.String("file_name", header.Filename))
	c.Redirect(http.StatusSeeOther, "/cessions/"+cessionID)
}

// DownloadDocumentHandler streams a stored document back to the
// browser with the backend's content type.
func (h *DocumentsHandlers) DownloadDocumentHandler(c *gin.Context) {
	data, contentType, err := h.Backend.DownloadDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err, "/clients")
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

func (h *DocumentsHandlers) DeleteDocumentHandler(c *gin.Context) {
	if err := h.Backend.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/clients")
		return
	}

	back := c.GetHeader("Referer")
	if back == "" {
		back = "/clients"
	}
	c.Redirect(http.StatusSeeOther, back)
}
