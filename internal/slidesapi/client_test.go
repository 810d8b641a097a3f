package slidesapi

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/slides/v1"
)

// newRecordingClient returns a googleClient whose submit hook records
// chunk sizes and answers one reply per request.
func newRecordingClient(chunks *[][]*slides.Request) *googleClient {
	c := &googleClient{}
	c.submit = func(_ context.Context, _ string, reqs []*slides.Request) (*slides.BatchUpdatePresentationResponse, error) {
		batch := make([]*slides.Request, len(reqs))
		copy(batch, reqs)
		*chunks = append(*chunks, batch)
		replies := make([]*slides.Response, len(reqs))
		for i := range replies {
			replies[i] = &slides.Response{}
		}
		return &slides.BatchUpdatePresentationResponse{Replies: replies}, nil
	}
	return c
}

func textRequests(n int) []*slides.Request {
	reqs := make([]*slides.Request, n)
	for i := range reqs {
		reqs[i] = &slides.Request{
			InsertText: &slides.InsertTextRequest{
				ObjectId: fmt.Sprintf("obj_%03d", i),
				Text:     "x",
			},
		}
	}
	return reqs
}

func TestBatchUpdate_ChunksAtFifty(t *testing.T) {
	cases := []struct {
		requests   int
		wantChunks []int
	}{
		{requests: 0, wantChunks: nil},
		{requests: 1, wantChunks: []int{1}},
		{requests: 50, wantChunks: []int{50}},
		{requests: 51, wantChunks: []int{50, 1}},
		{requests: 120, wantChunks: []int{50, 50, 20}},
	}

	for _, tc := range cases {
		var chunks [][]*slides.Request
		c := newRecordingClient(&chunks)

		replies, err := c.BatchUpdate(context.Background(), "pres-1", textRequests(tc.requests))
		require.NoError(t, err)
		assert.Len(t, replies, tc.requests)

		var sizes []int
		for _, chunk := range chunks {
			sizes = append(sizes, len(chunk))
		}
		assert.Equal(t, tc.wantChunks, sizes, "L=%d", tc.requests)
	}
}

func TestBatchUpdate_PreservesOrderAcrossChunks(t *testing.T) {
	var chunks [][]*slides.Request
	c := newRecordingClient(&chunks)

	_, err := c.BatchUpdate(context.Background(), "pres-1", textRequests(75))
	require.NoError(t, err)

	// Reassembled chunks must equal the original ordered list, since a
	// later request may reference an objectId created in a prior chunk.
	var flat []*slides.Request
	for _, chunk := range chunks {
		flat = append(flat, chunk...)
	}
	require.Len(t, flat, 75)
	for i, req := range flat {
		assert.Equal(t, fmt.Sprintf("obj_%03d", i), req.InsertText.ObjectId)
	}
}

func TestBatchUpdate_FailureAbortsRemainingChunks(t *testing.T) {
	calls := 0
	c := &googleClient{}
	c.submit = func(_ context.Context, _ string, reqs []*slides.Request) (*slides.BatchUpdatePresentationResponse, error) {
		calls++
		if calls == 2 {
			return nil, &googleapi.Error{Code: 400, Message: "invalid request"}
		}
		return &slides.BatchUpdatePresentationResponse{Replies: make([]*slides.Response, len(reqs))}, nil
	}

	_, err := c.BatchUpdate(context.Background(), "pres-1", textRequests(130))
	require.Error(t, err)
	// First chunk applied, second failed, third never sent. No rollback.
	assert.Equal(t, 2, calls)

	var apiErr *RemoteAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Message, "invalid request")
}

func TestCreateSlides_ReturnsOrderedIDs(t *testing.T) {
	var chunks [][]*slides.Request
	c := newRecordingClient(&chunks)

	ids, err := c.CreateSlides(context.Background(), "pres-1", 4)
	require.NoError(t, err)
	require.Len(t, ids, 4)

	require.Len(t, chunks, 1)
	for i, req := range chunks[0] {
		require.NotNil(t, req.CreateSlide)
		assert.Equal(t, ids[i], req.CreateSlide.ObjectId)
		assert.Equal(t, "BLANK", req.CreateSlide.SlideLayoutReference.PredefinedLayout)
	}
}

func TestCreateSlides_ZeroCountMakesNoCalls(t *testing.T) {
	var chunks [][]*slides.Request
	c := newRecordingClient(&chunks)

	ids, err := c.CreateSlides(context.Background(), "pres-1", 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, chunks)
}

func TestNewObjectID_PrefixAndUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewObjectID("textbox")
		assert.Contains(t, id, "textbox_")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
