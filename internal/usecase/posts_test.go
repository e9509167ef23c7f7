package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/publish"
)

type fakeTrendRepo struct {
	trends  map[int64]domain.Trend
	saveErr map[string]error
	saved   []domain.Trend
	nextID  int64
}

func newFakeTrendRepo() *fakeTrendRepo {
	return &fakeTrendRepo{trends: map[int64]domain.Trend{}, saveErr: map[string]error{}}
}

func (r *fakeTrendRepo) Save(ctx context.Context, topic domain.TrendingTopic) (domain.Trend, error) {
	if err := r.saveErr[topic.Title]; err != nil {
		return domain.Trend{}, err
	}
	r.nextID++
	trend := domain.Trend{ID: r.nextID, Topic: topic, Status: domain.TrendPending, CreatedAt: time.Now()}
	r.trends[trend.ID] = trend
	r.saved = append(r.saved, trend)
	return trend, nil
}

func (r *fakeTrendRepo) List(ctx context.Context, source, status string, limit int) ([]domain.Trend, error) {
	var out []domain.Trend
	for _, trend := range r.trends {
		out = append(out, trend)
	}
	return out, nil
}

func (r *fakeTrendRepo) Get(ctx context.Context, id int64) (domain.Trend, error) {
	trend, ok := r.trends[id]
	if !ok {
		return domain.Trend{}, fmt.Errorf("trend %d not found", id)
	}
	return trend, nil
}

func (r *fakeTrendRepo) UpdateStatus(ctx context.Context, id int64, status domain.TrendStatus) error {
	trend, ok := r.trends[id]
	if !ok {
		return fmt.Errorf("trend %d not found", id)
	}
	trend.Status = status
	r.trends[id] = trend
	return nil
}

func (r *fakeTrendRepo) Delete(ctx context.Context, id int64) error {
	delete(r.trends, id)
	return nil
}

func (r *fakeTrendRepo) Count(ctx context.Context) (int, error) {
	return len(r.trends), nil
}

type fakePostRepo struct {
	posts  map[int64]domain.Post
	due    []domain.Post
	nextID int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]domain.Post{}}
}

func (r *fakePostRepo) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	r.posts[post.ID] = post
	return post, nil
}

func (r *fakePostRepo) List(ctx context.Context, platform, status string, limit int) ([]domain.Post, error) {
	var out []domain.Post
	for _, post := range r.posts {
		out = append(out, post)
	}
	return out, nil
}

func (r *fakePostRepo) Get(ctx context.Context, id int64) (domain.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return domain.Post{}, fmt.Errorf("post %d not found", id)
	}
	return post, nil
}

func (r *fakePostRepo) RecordResult(ctx context.Context, id int64, result domain.PostResult, publishedAt time.Time) error {
	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	if result.Success {
		post.Status = domain.PostPublished
		post.PublishedAt = &publishedAt
		post.PlatformPostID = result.PlatformPostID
		post.ErrorMessage = ""
	} else {
		post.Status = domain.PostFailed
		post.ErrorMessage = result.Error
	}
	r.posts[id] = post
	return nil
}

func (r *fakePostRepo) MarkScheduled(ctx context.Context, id int64, at time.Time) error {
	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	post.Status = domain.PostScheduled
	post.ScheduledFor = &at
	r.posts[id] = post
	return nil
}

func (r *fakePostRepo) Due(ctx context.Context, now time.Time) ([]domain.Post, error) {
	return r.due, nil
}

func (r *fakePostRepo) UpdateAnalytics(ctx context.Context, id int64, analytics domain.PostAnalytics) error {
	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	post.Likes = analytics.Likes
	post.Comments = analytics.Comments
	post.Shares = analytics.Shares
	post.Views = analytics.Views
	r.posts[id] = post
	return nil
}

func (r *fakePostRepo) Count(ctx context.Context, status string) (int, error) {
	if status == "" || status == "all" {
		return len(r.posts), nil
	}
	count := 0
	for _, post := range r.posts {
		if string(post.Status) == status {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) TotalEngagement(ctx context.Context) (int, error) {
	total := 0
	for _, post := range r.posts {
		total += post.Likes + post.Comments + post.Shares
	}
	return total, nil
}

type fakeGenerator struct {
	imageErr error
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, trend string, platform domain.Platform, tone domain.Tone, language string) (domain.GeneratedContent, error) {
	return domain.GeneratedContent{
		Content:     "Post about " + trend + " for " + string(platform),
		Caption:     "caption",
		Hashtags:    []string{"#trend"},
		ImagePrompt: "image of " + trend,
	}, nil
}

func (g *fakeGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if g.imageErr != nil {
		return "", g.imageErr
	}
	return "https://images.example.com/gen.png", nil
}

func testDispatcher(t *testing.T, handler http.HandlerFunc) *publish.Dispatcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return publish.NewDispatcher(publish.Options{
		Client:       server.Client(),
		FacebookURL:  server.URL,
		InstagramURL: server.URL,
		TwitterURL:   server.URL,
		ThreadsURL:   server.URL,
		YouTubeURL:   server.URL,
		PinterestURL: server.URL,
	}, nil)
}

func newPostService(t *testing.T, trendRepo *fakeTrendRepo, postRepo *fakePostRepo, generator *fakeGenerator, creds domain.Credentials, handler http.HandlerFunc) *PostService {
	t.Helper()
	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"remote_1"}`))
		}
	}
	return NewPostService(PostServiceDeps{
		TrendRepo:   trendRepo,
		PostRepo:    postRepo,
		Generator:   generator,
		Dispatcher:  testDispatcher(t, handler),
		Credentials: creds,
	})
}

func seedTrend(repo *fakeTrendRepo, title string) domain.Trend {
	trend, _ := repo.Save(context.Background(), domain.TrendingTopic{
		Title: title, Source: domain.SourceGoogle, Language: "en", Region: "US",
	})
	return trend
}

func TestGenerateDefaultsToThreePlatforms(t *testing.T) {
	t.Parallel()

	trendRepo := newFakeTrendRepo()
	postRepo := newFakePostRepo()
	trend := seedTrend(trendRepo, "AI Agents")
	service := newPostService(t, trendRepo, postRepo, &fakeGenerator{}, domain.Credentials{}, nil)

	posts, err := service.Generate(context.Background(), trend.ID, "", "", "")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(posts))
	}

	platforms := map[domain.Platform]bool{}
	for _, post := range posts {
		platforms[post.Platform] = true
		if post.Status != domain.PostDraft {
			t.Fatalf("drafts expected, got %s", post.Status)
		}
		if post.Tone != domain.ToneProfessional {
			t.Fatalf("tone should default to professional, got %s", post.Tone)
		}
		if post.ImageURL == "" {
			t.Fatalf("image url missing: %+v", post)
		}
	}
	for _, want := range []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformTwitter} {
		if !platforms[want] {
			t.Fatalf("missing draft for %s", want)
		}
	}
}

func TestGenerateSinglePlatform(t *testing.T) {
	t.Parallel()

	trendRepo := newFakeTrendRepo()
	postRepo := newFakePostRepo()
	trend := seedTrend(trendRepo, "Go 1.25")
	service := newPostService(t, trendRepo, postRepo, &fakeGenerator{}, domain.Credentials{}, nil)

	posts, err := service.Generate(context.Background(), trend.ID, "threads", domain.ToneFunny, "de")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(posts) != 1 || posts[0].Platform != domain.PlatformThreads || posts[0].Tone != domain.ToneFunny {
		t.Fatalf("unexpected drafts: %+v", posts)
	}
}

func TestGenerateUnknownPlatform(t *testing.T) {
	t.Parallel()

	trendRepo := newFakeTrendRepo()
	trend := seedTrend(trendRepo, "Go 1.25")
	service := newPostService(t, trendRepo, newFakePostRepo(), &fakeGenerator{}, domain.Credentials{}, nil)

	if _, err := service.Generate(context.Background(), trend.ID, "myspace", "", ""); err == nil {
		t.Fatal("expected an error for unknown platform")
	}
}

func TestGenerateToleratesImageFailure(t *testing.T) {
	t.Parallel()

	trendRepo := newFakeTrendRepo()
	postRepo := newFakePostRepo()
	trend := seedTrend(trendRepo, "Go 1.25")
	generator := &fakeGenerator{imageErr: errors.New("image api down")}
	service := newPostService(t, trendRepo, postRepo, generator, domain.Credentials{}, nil)

	posts, err := service.Generate(context.Background(), trend.ID, "facebook", "", "")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(posts) != 1 || posts[0].ImageURL != "" {
		t.Fatalf("draft should survive without an image: %+v", posts)
	}
}

func TestPublishRecordsSuccess(t *testing.T) {
	t.Parallel()

	postRepo := newFakePostRepo()
	draft, _ := postRepo.Create(context.Background(), domain.Post{
		Platform: domain.PlatformFacebook, Content: "hello", Status: domain.PostDraft,
	})
	creds := domain.Credentials{Facebook: domain.TokenCredential{AccessToken: "tok"}}
	service := newPostService(t, newFakeTrendRepo(), postRepo, &fakeGenerator{}, creds, nil)

	result, post, err := service.Publish(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if !result.Success || result.PlatformPostID != "remote_1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if post.Status != domain.PostPublished || post.PlatformPostID != "remote_1" || post.PublishedAt == nil {
		t.Fatalf("outcome not persisted: %+v", post)
	}
}

func TestPublishRecordsFailure(t *testing.T) {
	t.Parallel()

	postRepo := newFakePostRepo()
	draft, _ := postRepo.Create(context.Background(), domain.Post{
		Platform: domain.PlatformInstagram, Content: "hello", Status: domain.PostDraft,
	})
	creds := domain.Credentials{Instagram: domain.TokenCredential{AccessToken: "tok"}}
	service := newPostService(t, newFakeTrendRepo(), postRepo, &fakeGenerator{}, creds, nil)

	result, post, err := service.Publish(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if result.Success || result.Error != "Instagram requires an image" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if post.Status != domain.PostFailed || post.ErrorMessage != "Instagram requires an image" {
		t.Fatalf("failure not persisted: %+v", post)
	}
}

func TestScheduleRejectsPastTime(t *testing.T) {
	t.Parallel()

	postRepo := newFakePostRepo()
	draft, _ := postRepo.Create(context.Background(), domain.Post{Platform: domain.PlatformTwitter})
	service := newPostService(t, newFakeTrendRepo(), postRepo, &fakeGenerator{}, domain.Credentials{}, nil)

	if err := service.Schedule(context.Background(), draft.ID, time.Now().Add(-time.Minute)); err == nil {
		t.Fatal("expected an error for past time")
	}

	future := time.Now().Add(time.Hour)
	if err := service.Schedule(context.Background(), draft.ID, future); err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	stored, _ := postRepo.Get(context.Background(), draft.ID)
	if stored.Status != domain.PostScheduled || stored.ScheduledFor == nil {
		t.Fatalf("schedule not persisted: %+v", stored)
	}
}

func TestPublishDueIsolatesFailures(t *testing.T) {
	t.Parallel()

	postRepo := newFakePostRepo()
	good, _ := postRepo.Create(context.Background(), domain.Post{
		Platform: domain.PlatformFacebook, Content: "ok", Status: domain.PostScheduled,
	})
	bad, _ := postRepo.Create(context.Background(), domain.Post{
		Platform: domain.PlatformInstagram, Content: "no image", Status: domain.PostScheduled,
	})
	postRepo.due = []domain.Post{postRepo.posts[bad.ID], postRepo.posts[good.ID]}

	creds := domain.Credentials{
		Facebook:  domain.TokenCredential{AccessToken: "tok"},
		Instagram: domain.TokenCredential{AccessToken: "tok"},
	}
	service := newPostService(t, newFakeTrendRepo(), postRepo, &fakeGenerator{}, creds, nil)

	service.PublishDue(context.Background(), time.Now())

	published, _ := postRepo.Get(context.Background(), good.ID)
	if published.Status != domain.PostPublished {
		t.Fatalf("later post must still publish: %+v", published)
	}
	failed, _ := postRepo.Get(context.Background(), bad.ID)
	if failed.Status != domain.PostFailed || failed.ErrorMessage != "Instagram requires an image" {
		t.Fatalf("failure not recorded: %+v", failed)
	}
}

func TestRefreshAnalyticsRequiresPublishedPost(t *testing.T) {
	t.Parallel()

	postRepo := newFakePostRepo()
	draft, _ := postRepo.Create(context.Background(), domain.Post{Platform: domain.PlatformFacebook})
	service := newPostService(t, newFakeTrendRepo(), postRepo, &fakeGenerator{}, domain.Credentials{}, nil)

	if _, err := service.RefreshAnalytics(context.Background(), draft.ID); err == nil {
		t.Fatal("expected an error for unpublished post")
	}
}

func TestRefreshAnalyticsStoresCounters(t *testing.T) {
	t.Parallel()

	postRepo := newFakePostRepo()
	post, _ := postRepo.Create(context.Background(), domain.Post{
		Platform: domain.PlatformFacebook, Status: domain.PostPublished, PlatformPostID: "fb_9",
	})
	// No credentials configured: the adapter answers with demo counters.
	service := newPostService(t, newFakeTrendRepo(), postRepo, &fakeGenerator{}, domain.Credentials{}, nil)

	analytics, err := service.RefreshAnalytics(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("RefreshAnalytics error: %v", err)
	}

	stored, _ := postRepo.Get(context.Background(), post.ID)
	if stored.Likes != analytics.Likes || stored.Views != analytics.Views {
		t.Fatalf("analytics not persisted: %+v vs %+v", stored, analytics)
	}
}

func TestStatsAggregatesCounters(t *testing.T) {
	t.Parallel()

	trendRepo := newFakeTrendRepo()
	postRepo := newFakePostRepo()
	seedTrend(trendRepo, "One")
	seedTrend(trendRepo, "Two")
	_, _ = postRepo.Create(context.Background(), domain.Post{
		Platform: domain.PlatformFacebook, Status: domain.PostScheduled,
	})
	_, _ = postRepo.Create(context.Background(), domain.Post{
		Platform: domain.PlatformTwitter, Status: domain.PostPublished,
		Likes: 10, Comments: 5, Shares: 2,
	})

	service := newPostService(t, trendRepo, postRepo, &fakeGenerator{}, domain.Credentials{}, nil)

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	want := Stats{TotalTrends: 2, TotalPosts: 2, ScheduledPosts: 1, TotalEngagement: 17}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}
