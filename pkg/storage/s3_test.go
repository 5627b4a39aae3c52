package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocumentFileType(t *testing.T) {
	assert.True(t, ValidateDocumentFileType("application/pdf", "lease.pdf"))
	assert.True(t, ValidateDocumentFileType("image/jpeg", "id-card.jpg"))
	assert.True(t, ValidateDocumentFileType("", "agreement.docx"))       // extension only
	assert.True(t, ValidateDocumentFileType("application/pdf", "blob")) // content type only
	assert.True(t, ValidateDocumentFileType("APPLICATION/PDF", "lease.PDF"))

	assert.False(t, ValidateDocumentFileType("application/zip", "archive.zip"))
	assert.False(t, ValidateDocumentFileType("text/html", "page.html"))
	assert.False(t, ValidateDocumentFileType("", ""))
}

func TestDocumentKey(t *testing.T) {
	key := DocumentKey("owner-1", "doc-1", "Lease Agreement.PDF")
	assert.Equal(t, "documents/owner-1/doc-1.pdf", key)

	assert.Equal(t, "documents/owner-1/doc-2", DocumentKey("owner-1", "doc-2", "noext"))
}
