package providers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const phishEML = `From: Bank <scam@malicious-login.biz>
To: victim@example.com
Subject: URGENT!!! Verify Your Account Now!!!
Date: Mon, 02 Jun 2025 10:00:00 +0000
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="BOUNDARY"

--BOUNDARY
Content-Type: text/plain; charset="utf-8"

Dear Customer, please verify your password at http://192.168.1.5/login today.
--BOUNDARY
Content-Type: application/octet-stream
Content-Disposition: attachment; filename="invoice.pdf.exe"
Content-Transfer-Encoding: base64

TVqQAAMAAAAEAAAA
--BOUNDARY--
`

const oldEML = `From: alice@uncw.edu
Subject: Project meeting notes
Date: Wed, 01 Jan 2020 09:00:00 +0000
Content-Type: text/plain

See attached notes.docx
`

func writeEML(t *testing.T, dir, name, content string) {
	t.Helper()
	data := strings.ReplaceAll(content, "\n", "\r\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func TestEMLSource_GetSubmissions(t *testing.T) {
	dir := t.TempDir()
	writeEML(t, dir, "phish.eml", phishEML)
	writeEML(t, dir, "old.eml", oldEML)
	writeEML(t, dir, "notes.txt", "not an email")

	source := NewEMLSource(dir, zap.NewNop())

	all, err := source.GetSubmissions(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// os.ReadDir returns entries sorted by name
	old, phish := all[0], all[1]
	assert.Equal(t, "old.eml", old.SourceRef)
	assert.Equal(t, "phish.eml", phish.SourceRef)

	assert.Equal(t, "eml", phish.Source)
	assert.Equal(t, "Bank <scam@malicious-login.biz>", phish.Sender)
	assert.Equal(t, "URGENT!!! Verify Your Account Now!!!", phish.Subject)
	assert.Contains(t, phish.Body, "http://192.168.1.5/login")
	assert.Equal(t, []string{"invoice.pdf.exe"}, phish.Attachments)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), phish.ReceivedAt)

	assert.Empty(t, old.Attachments)
}

func TestEMLSource_ReceivedAfterFilter(t *testing.T) {
	dir := t.TempDir()
	writeEML(t, dir, "phish.eml", phishEML)
	writeEML(t, dir, "old.eml", oldEML)

	source := NewEMLSource(dir, zap.NewNop())

	recent, err := source.GetSubmissions(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "phish.eml", recent[0].SourceRef)
}

func TestEMLSource_MissingDirectory(t *testing.T) {
	source := NewEMLSource(filepath.Join(t.TempDir(), "missing"), zap.NewNop())

	_, err := source.GetSubmissions(context.Background(), time.Time{})
	assert.Error(t, err)
}

func TestSampleSource_GetSubmissions(t *testing.T) {
	source := NewSampleSource()

	all, err := source.GetSubmissions(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := source.GetSubmissions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, none)
}
