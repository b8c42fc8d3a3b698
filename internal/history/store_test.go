package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakhCo/trading-bot/internal/domain"
)

var testNow = time.Date(2025, 8, 14, 12, 30, 0, 0, time.UTC)

func textRecord(role domain.Role, text string) domain.Record {
	return domain.Record{
		Role:      role,
		Content:   domain.TextContent(text),
		ModelName: "o4-mini",
		Timestamp: testNow,
	}
}

func TestAppendThenReadPreservesOrder(t *testing.T) {
	s := NewStore(t.TempDir())

	texts := []string{"first", "second", "third", "fourth"}
	for _, txt := range texts {
		require.NoError(t, s.Append(7, testNow, textRecord(domain.RoleUser, txt)))
	}

	records := s.ReadAll(7, testNow)
	require.Len(t, records, len(texts))
	for i, rec := range records {
		assert.Equal(t, texts[i], rec.Content.Text)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.Empty(t, s.ReadAll(1, testNow))
}

func TestReadAllCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	p := filepath.Join(dir, "1", testNow.Format("2006-01"), "history.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("{not json at all"), 0o644))

	assert.Empty(t, s.ReadAll(1, testNow))
}

func TestAppendAfterCorruptionStartsFresh(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	p := filepath.Join(dir, "2", testNow.Format("2006-01"), "history.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("garbage"), 0o644))

	require.NoError(t, s.Append(2, testNow, textRecord(domain.RoleUser, "hello")))

	records := s.ReadAll(2, testNow)
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0].Content.Text)
}

func TestLogsKeyedByMonth(t *testing.T) {
	s := NewStore(t.TempDir())

	august := testNow
	september := testNow.AddDate(0, 1, 0)

	require.NoError(t, s.Append(3, august, textRecord(domain.RoleUser, "aug")))
	require.NoError(t, s.Append(3, september, textRecord(domain.RoleUser, "sep")))

	augRecords := s.ReadAll(3, august)
	require.Len(t, augRecords, 1)
	assert.Equal(t, "aug", augRecords[0].Content.Text)

	sepRecords := s.ReadAll(3, september)
	require.Len(t, sepRecords, 1)
	assert.Equal(t, "sep", sepRecords[0].Content.Text)
}

func TestRecordRoundTripKeepsMetadata(t *testing.T) {
	s := NewStore(t.TempDir())

	rec := domain.Record{
		Role:      domain.RoleAssistant,
		Content:   domain.TextContent("reply"),
		MessageID: 42,
		ModelName: "o4-mini",
		Tokens:    500,
		Price:     domain.NewPrice(decimal.RequireFromString("0.0022")),
		Timestamp: testNow,
	}
	require.NoError(t, s.Append(4, testNow, rec))

	records := s.ReadAll(4, testNow)
	require.Len(t, records, 1)
	got := records[0]
	assert.Equal(t, domain.RoleAssistant, got.Role)
	assert.Equal(t, 42, got.MessageID)
	assert.Equal(t, 500, got.Tokens)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("0.0022")))
	assert.True(t, got.Timestamp.Equal(testNow))
}

func TestMultimodalContentRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	rec := domain.Record{
		Role:      domain.RoleUser,
		Content:   domain.ImageContent("https://example.com/photo.jpg"),
		ModelName: "o4-mini",
		Timestamp: testNow,
	}
	require.NoError(t, s.Append(5, testNow, rec))

	records := s.ReadAll(5, testNow)
	require.Len(t, records, 1)
	require.Len(t, records[0].Content.Parts, 1)
	assert.Equal(t, domain.PartImage, records[0].Content.Parts[0].Type)
	assert.Equal(t, "https://example.com/photo.jpg", records[0].Content.Parts[0].ImageURL)
}
