package layout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/slides/v1"

	"github.com/algo-rhythm/portfolio-deck/internal/imaging"
	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// roundTripFunc lets the photo tests run without reachable image hosts.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func offlineProber() *imaging.Prober {
	return imaging.NewProber(&http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("offline")
		}),
	})
}

// fakeClient records every batch without touching the network.
type fakeClient struct {
	batches [][]*slides.Request
}

func (f *fakeClient) CreatePresentation(ctx context.Context, title string) (string, error) {
	return "pres-1", nil
}

func (f *fakeClient) GetPresentation(ctx context.Context, presentationID string) (*slides.Presentation, error) {
	return &slides.Presentation{PresentationId: presentationID}, nil
}

func (f *fakeClient) CreateSlides(ctx context.Context, presentationID string, count int) ([]string, error) {
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("slide_%d", i)
	}
	return ids, nil
}

func (f *fakeClient) BatchUpdate(ctx context.Context, presentationID string, reqs []*slides.Request) ([]*slides.Response, error) {
	f.batches = append(f.batches, reqs)
	return make([]*slides.Response, len(reqs)), nil
}

func poolOf(n int) *Pool {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("slide_%d", i)
	}
	return NewPool(ids)
}

func insertedTexts(batches [][]*slides.Request) []string {
	var texts []string
	for _, batch := range batches {
		for _, req := range batch {
			if req.InsertText != nil {
				texts = append(texts, req.InsertText.Text)
			}
		}
	}
	return texts
}

func countImages(reqs []*slides.Request) int {
	n := 0
	for _, req := range reqs {
		if req.CreateImage != nil {
			n++
		}
	}
	return n
}

func backgroundFills(batches [][]*slides.Request) [][]*slides.Request {
	var fills [][]*slides.Request
	for _, batch := range batches {
		for _, req := range batch {
			if req.UpdatePageProperties != nil {
				fills = append(fills, batch)
				break
			}
		}
	}
	return fills
}

func exp(title, period string, imageCount int) types.ExperienceRecord {
	urls := make([]string, imageCount)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://img.example/%s/%d.png", title, i)
	}
	return types.ExperienceRecord{Title: title, Period: period, Description: title + " 설명", ImageURLs: urls}
}

var testStyle = types.ThemeStyle{
	BackgroundColor: types.RGB{Red: 1, Green: 1, Blue: 1},
	TextColor:       types.RGB{Red: 0.1, Green: 0.1, Blue: 0.1},
}

func TestBasicEngine_PackingAndOverflow(t *testing.T) {
	client := &fakeClient{}
	eng, err := ForTemplate(types.TemplateBasic, Deps{Client: client, Sink: progress.NewReporter()})
	require.NoError(t, err)

	experiences := []types.ExperienceRecord{
		exp("하나", "2024.01", 0),
		exp("둘", "2024.02", 2),
		exp("셋", "2024.03", 4),
	}
	pool := poolOf(4)

	require.NoError(t, eng.Layout(context.Background(), "pres-1", pool, experiences, testStyle))
	assert.Zero(t, pool.Remaining(), "plan and pool must agree on slide count")

	// One content batch per slide plus the grouped background batch.
	require.Len(t, client.batches, 5)
	assert.Equal(t, 0, countImages(client.batches[0]))
	assert.Equal(t, 2, countImages(client.batches[1]))
	assert.Equal(t, 2, countImages(client.batches[2]))
	assert.Equal(t, 2, countImages(client.batches[3]))

	// The overflow slide repeats the text block.
	texts := insertedTexts(client.batches[2:4])
	assert.Equal(t, 2, countOccurrences(texts, "셋"))
}

func countOccurrences(texts []string, want string) int {
	n := 0
	for _, s := range texts {
		if s == want {
			n++
		}
	}
	return n
}

func TestBasicEngine_GroupedBackgroundFill(t *testing.T) {
	client := &fakeClient{}
	eng, err := ForTemplate(types.TemplateBasic, Deps{Client: client})
	require.NoError(t, err)

	experiences := []types.ExperienceRecord{exp("하나", "2024.01", 0), exp("둘", "2024.02", 3)}
	require.NoError(t, eng.Layout(context.Background(), "pres-1", poolOf(3), experiences, testStyle))

	fills := backgroundFills(client.batches)
	require.Len(t, fills, 1, "background fill must go out as one grouped batch")
	assert.Len(t, fills[0], 3, "one fill request per touched slide")
	for _, req := range fills[0] {
		require.NotNil(t, req.UpdatePageProperties.PageProperties.PageBackgroundFill.SolidFill)
	}
	assert.Same(t, client.batches[len(client.batches)-1][0], fills[0][0], "fill batch comes last")
}

func TestBasicEngine_PoolExhaustion(t *testing.T) {
	client := &fakeClient{}
	eng, err := ForTemplate(types.TemplateBasic, Deps{Client: client})
	require.NoError(t, err)

	experiences := []types.ExperienceRecord{exp("하나", "2024.01", 0), exp("둘", "2024.02", 0)}
	err = eng.Layout(context.Background(), "pres-1", poolOf(1), experiences, testStyle)

	var planErr *PlanConsistencyError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, 1, planErr.Provisioned)
}

func TestTimelineEngine_SortsByStartDate(t *testing.T) {
	client := &fakeClient{}
	eng, err := ForTemplate(types.TemplateTimeline, Deps{Client: client})
	require.NoError(t, err)

	experiences := []types.ExperienceRecord{
		exp("중간", "2024.03.01 - 2024.06.30", 0),
		exp("처음", "2023.01.01 - 2023.12.31", 0),
		exp("마지막", "2025.06.01 - 2025.08.31", 0),
	}
	require.NoError(t, eng.Layout(context.Background(), "pres-1", poolOf(4), experiences, testStyle))

	texts := insertedTexts(client.batches[:1])
	require.Len(t, texts, 4, "overview holds the heading plus one entry per experience")
	assert.Equal(t, "타임라인", texts[0])
	assert.Contains(t, texts[1], "1. 처음")
	assert.Contains(t, texts[2], "2. 중간")
	assert.Contains(t, texts[3], "3. 마지막")

	// Detail slides follow the same order.
	assert.Equal(t, "처음", insertedTexts(client.batches[1:2])[0])
	assert.Equal(t, "중간", insertedTexts(client.batches[2:3])[0])
	assert.Equal(t, "마지막", insertedTexts(client.batches[3:4])[0])
}

func TestTimelineEngine_UnparseablePeriodsSortLast(t *testing.T) {
	client := &fakeClient{}
	eng, err := ForTemplate(types.TemplateTimeline, Deps{Client: client})
	require.NoError(t, err)

	experiences := []types.ExperienceRecord{
		exp("기간미상", "재학중", 0),
		exp("최근", "2025.01", 0),
		exp("과거", "2020.01", 0),
	}
	require.NoError(t, eng.Layout(context.Background(), "pres-1", poolOf(4), experiences, testStyle))

	texts := insertedTexts(client.batches[:1])
	assert.Contains(t, texts[1], "1. 과거")
	assert.Contains(t, texts[2], "2. 최근")
	assert.Contains(t, texts[3], "3. 기간미상")
}

func TestTimelineEngine_OverviewSplitsIntoColumns(t *testing.T) {
	client := &fakeClient{}
	eng, err := ForTemplate(types.TemplateTimeline, Deps{Client: client})
	require.NoError(t, err)

	experiences := make([]types.ExperienceRecord, 5)
	for i := range experiences {
		experiences[i] = exp(fmt.Sprintf("이력%d", i+1), fmt.Sprintf("202%d.01", i), 0)
	}
	require.NoError(t, eng.Layout(context.Background(), "pres-1", poolOf(6), experiences, testStyle))

	var entryXs []float64
	for _, req := range client.batches[0] {
		if req.CreateShape == nil {
			continue
		}
		entryXs = append(entryXs, req.CreateShape.ElementProperties.Transform.TranslateX)
	}
	// Heading box plus five entries: first three left column, last two right.
	require.Len(t, entryXs, 6)
	assert.Equal(t, []float64{overviewLeftX, overviewLeftX, overviewLeftX}, entryXs[1:4])
	assert.Equal(t, []float64{overviewRightX, overviewRightX}, entryXs[4:6])
}

func TestPhotoEngine_SkipsImagelessExperiences(t *testing.T) {
	client := &fakeClient{}
	eng, err := ForTemplate(types.TemplatePhoto, Deps{Client: client})
	require.NoError(t, err)

	experiences := []types.ExperienceRecord{exp("글만", "2024.01", 0)}
	require.NoError(t, eng.Layout(context.Background(), "pres-1", poolOf(0), experiences, testStyle))
	assert.Empty(t, client.batches, "nothing to place, nothing to paint")
}

func TestPhotoEngine_OneSlidePerImage(t *testing.T) {
	client := &fakeClient{}
	reporter := progress.NewReporter()
	eng, err := ForTemplate(types.TemplatePhoto, Deps{Client: client, Sink: reporter, Prober: offlineProber()})
	require.NoError(t, err)

	// Probes against unreachable hosts fall back to landscape.
	experiences := []types.ExperienceRecord{
		exp("글만", "2023.01", 0),
		exp("전시", "2024.01", 2),
		exp("공연", "2024.06", 1),
	}
	pool := poolOf(3)
	require.NoError(t, eng.Layout(context.Background(), "pres-1", pool, experiences, testStyle))

	assert.Zero(t, pool.Remaining())
	require.Len(t, client.batches, 4, "three photo slides plus the background batch")
	for _, batch := range client.batches[:3] {
		assert.Equal(t, 1, countImages(batch))
	}

	snap := reporter.Snapshot()
	assert.Equal(t, 3, snap.TotalImages)
	assert.Equal(t, 3, snap.CurrentImage)
}

func TestPhotoSlideRequests_Orientation(t *testing.T) {
	eng := &PhotoEngine{}
	record := exp("전시", "2024.01", 1)

	imageX := func(reqs []*slides.Request) float64 {
		for _, req := range reqs {
			if req.CreateImage != nil {
				return req.CreateImage.ElementProperties.Transform.TranslateX
			}
		}
		t.Fatal("no image request built")
		return 0
	}

	landscape := eng.photoSlideRequests("s1", record, record.ImageURLs[0], imaging.Dimensions{Width: 800, Height: 600}, testStyle.TextColor)
	assert.Equal(t, landscapeImageX, imageX(landscape))

	portrait := eng.photoSlideRequests("s1", record, record.ImageURLs[0], imaging.Dimensions{Width: 600, Height: 800}, testStyle.TextColor)
	assert.Equal(t, portraitImageX, imageX(portrait))
}

func TestForTemplate_UnknownKind(t *testing.T) {
	_, err := ForTemplate(types.TemplateKind("fancy"), Deps{})
	assert.Error(t, err)
}

func TestPool(t *testing.T) {
	p := NewPool([]string{"a", "b"})
	assert.Equal(t, 2, p.Remaining())

	id, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", id)

	_, err = p.Next()
	require.NoError(t, err)

	_, err = p.Next()
	var planErr *PlanConsistencyError
	assert.True(t, errors.As(err, &planErr))
}
