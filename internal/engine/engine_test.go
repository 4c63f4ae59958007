package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/voicedocs-mcp/internal/ingest"
	"github.com/bull/voicedocs-mcp/internal/manifest"
)

// fakeDiscovery serves a fixed file set and counts how often it is asked.
type fakeDiscovery struct {
	files []manifest.FetchedFile
	calls atomic.Int32
}

func (f *fakeDiscovery) FetchAll(_ context.Context) []manifest.FetchedFile {
	f.calls.Add(1)
	return f.files
}

// TestEngine_InitializeIngestsDiscovery verifies discovered files end up in
// the index.
func TestEngine_InitializeIngestsDiscovery(t *testing.T) {
	disc := &fakeDiscovery{files: []manifest.FetchedFile{
		{Name: "policy.txt", Data: []byte("Reset your password. Use the portal.")},
	}}
	e := New(Config{Discovery: disc})

	require.NoError(t, e.Initialize(context.Background()))
	assert.True(t, e.Ready())

	stats := e.Stats()
	assert.Equal(t, 1, stats.TotalDocuments)
	assert.Equal(t, 1, stats.TotalChunks)
}

// TestEngine_InitializeOnce verifies repeated and concurrent initialization
// runs discovery exactly once.
func TestEngine_InitializeOnce(t *testing.T) {
	disc := &fakeDiscovery{}
	e := New(Config{Discovery: disc})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.Initialize(ctx))
		}()
	}
	wg.Wait()

	require.NoError(t, e.Initialize(ctx))
	assert.Equal(t, int32(1), disc.calls.Load())
}

// TestEngine_SearchLazyInitializes verifies searching a fresh engine
// implicitly initializes instead of erroring.
func TestEngine_SearchLazyInitializes(t *testing.T) {
	disc := &fakeDiscovery{files: []manifest.FetchedFile{
		{Name: "vpn.txt", Data: []byte("Connect to the vpn using your token.")},
	}}
	e := New(Config{Discovery: disc})

	results, err := e.Search(context.Background(), "vpn", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "vpn.txt (Page 1)", results[0].Source)
	assert.True(t, e.Ready())
	assert.Equal(t, int32(1), disc.calls.Load())
}

// TestEngine_EmptyDiscoveryStillInitialized verifies a failed or empty
// discovery leaves the engine initialized with zero documents.
func TestEngine_EmptyDiscoveryStillInitialized(t *testing.T) {
	e := New(Config{Discovery: &fakeDiscovery{}})

	require.NoError(t, e.Initialize(context.Background()))
	assert.True(t, e.Ready())

	stats := e.Stats()
	assert.Equal(t, 0, stats.TotalDocuments)
	assert.Equal(t, 0, stats.TotalChunks)

	results, err := e.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestEngine_UploadPath verifies direct ingestion bypasses discovery and
// marks the engine initialized.
func TestEngine_UploadPath(t *testing.T) {
	disc := &fakeDiscovery{}
	e := New(Config{Discovery: disc})

	result, err := e.Ingest(context.Background(), []ingest.RawDocument{
		{FileName: "upload.txt", Data: []byte("Uploaded memo about travel expenses.")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessfulDocs)
	assert.True(t, e.Ready())

	results, err := e.Search(context.Background(), "travel expenses", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int32(0), disc.calls.Load(), "upload must not trigger discovery")
}

// TestEngine_Reset verifies Reset empties the index and re-arms
// initialization.
func TestEngine_Reset(t *testing.T) {
	disc := &fakeDiscovery{files: []manifest.FetchedFile{
		{Name: "a.txt", Data: []byte("Some indexed sentence.")},
	}}
	e := New(Config{Discovery: disc})
	ctx := context.Background()

	require.NoError(t, e.Initialize(ctx))
	require.Equal(t, 1, e.Stats().TotalDocuments)

	e.Reset()
	assert.False(t, e.Ready())
	assert.Equal(t, 0, e.Stats().TotalDocuments)

	require.NoError(t, e.Initialize(ctx))
	assert.Equal(t, int32(2), disc.calls.Load())
	assert.Equal(t, 1, e.Stats().TotalDocuments)
}

// TestEngine_NoDiscoveryConfigured verifies an engine without discovery
// initializes to an empty index.
func TestEngine_NoDiscoveryConfigured(t *testing.T) {
	e := New(Config{})

	results, err := e.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.True(t, e.Ready())
}

// TestEngine_CancelledInitialize verifies cancellation surfaces and leaves
// the engine uninitialized.
func TestEngine_CancelledInitialize(t *testing.T) {
	e := New(Config{Discovery: &fakeDiscovery{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, e.Initialize(ctx))
	assert.False(t, e.Ready())
}
