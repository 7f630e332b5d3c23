package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
	"github.com/spandanmajumder/portfolio/internal/testutil/memstore"
)

func ptr[T any](v T) *T { return &v }

// steppingClock advances one second per call.
func steppingClock() func() time.Time {
	t := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestPortfolioService_Create_Defaults(t *testing.T) {
	repo := memstore.NewPortfolioRepository()
	svc := NewPortfolioService(repo, zerolog.Nop())

	item, err := svc.Create(context.Background(), ports.PortfolioInput{
		Title:       "Shop",
		Description: "An online shop",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), item.ID)
	assert.False(t, item.Featured)
	assert.NotNil(t, item.Technologies)
	assert.Empty(t, item.Technologies)
	assert.Nil(t, item.ImageURL)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	assert.Equal(t, item.CreatedAt, item.CreatedAt.Truncate(time.Millisecond))
}

func TestPortfolioService_Create_Validation(t *testing.T) {
	repo := memstore.NewPortfolioRepository()
	svc := NewPortfolioService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.PortfolioInput{Title: "  "})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Issues, 2)
	assert.Equal(t, "title", ve.Issues[0].Field)
	assert.Equal(t, "description", ve.Issues[1].Field)
	assert.Zero(t, repo.Writes(), "validation failures must not touch the store")
}

func TestPortfolioService_Create_SanitizesContent(t *testing.T) {
	svc := NewPortfolioService(memstore.NewPortfolioRepository(), zerolog.Nop())

	item, err := svc.Create(context.Background(), ports.PortfolioInput{
		Title:        "Shop",
		Description:  "desc",
		Content:      ptr(`<p onclick="x()">Hi</p><script>alert(1)</script>`),
		Technologies: []string{" Go ", "", "React"},
	})
	require.NoError(t, err)

	assert.Equal(t, "<p>Hi</p>", *item.Content)
	assert.Equal(t, []string{"Go", "React"}, item.Technologies)
}

func TestPortfolioService_Update_OnlyChangesProvidedFields(t *testing.T) {
	repo := memstore.NewPortfolioRepository()
	svc := NewPortfolioService(repo, zerolog.Nop())
	svc.now = steppingClock()

	created, err := svc.Create(context.Background(), ports.PortfolioInput{
		Title:        "Shop",
		Description:  "desc",
		GithubURL:    ptr("https://github.com/x/shop"),
		Technologies: []string{"Vue"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, ports.PortfolioPatch{
		Technologies: &[]string{"Go", "React"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "React"}, updated.Technologies)
	assert.Equal(t, "Shop", updated.Title)
	assert.Equal(t, "https://github.com/x/shop", *updated.GithubURL)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestPortfolioService_Update_Errors(t *testing.T) {
	repo := memstore.NewPortfolioRepository()
	svc := NewPortfolioService(repo, zerolog.Nop())
	created, err := svc.Create(context.Background(), ports.PortfolioInput{Title: "Shop", Description: "desc"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, ports.PortfolioPatch{Title: ptr("")})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Update(context.Background(), 999, ports.PortfolioPatch{Featured: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPortfolioService_ListAndFeatured_NewestFirst(t *testing.T) {
	svc := NewPortfolioService(memstore.NewPortfolioRepository(), zerolog.Nop())
	svc.now = steppingClock()
	ctx := context.Background()

	for _, in := range []ports.PortfolioInput{
		{Title: "A", Description: "a", Featured: true},
		{Title: "B", Description: "b"},
		{Title: "C", Description: "c", Featured: true},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{all[0].Title, all[1].Title, all[2].Title})

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "C", featured[0].Title)
	assert.Equal(t, "A", featured[1].Title)
}

func TestPortfolioService_Delete(t *testing.T) {
	svc := NewPortfolioService(memstore.NewPortfolioRepository(), zerolog.Nop())
	ctx := context.Background()
	item, err := svc.Create(ctx, ports.PortfolioInput{Title: "Shop", Description: "desc"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))
	_, err = svc.Get(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, item.ID), domain.ErrNotFound)
}

func TestCaseStudyService_CreateAndUpdate(t *testing.T) {
	repo := memstore.NewCaseStudyRepository()
	svc := NewCaseStudyService(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, ports.CaseStudyInput{Title: "Migration"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Issues, 2)

	cs, err := svc.Create(ctx, ports.CaseStudyInput{
		Title:   "Migration",
		Excerpt: "Moving to the cloud",
		Content: `<h2>Result</h2><img src=x onerror="steal()">`,
		Tags:    []string{"cloud"},
	})
	require.NoError(t, err)
	assert.NotContains(t, cs.Content, "onerror")
	assert.False(t, cs.Featured)

	updated, err := svc.Update(ctx, cs.ID, ports.CaseStudyPatch{
		Featured: ptr(true),
		Outcome:  ptr("40% cheaper"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.Equal(t, "40% cheaper", *updated.Outcome)
	assert.Equal(t, []string{"cloud"}, updated.Tags)

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 1)
}

func TestCaseStudyService_ContentStrippedToNothingIsRejected(t *testing.T) {
	repo := memstore.NewCaseStudyRepository()
	svc := NewCaseStudyService(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, ports.CaseStudyInput{
		Title:   "T",
		Excerpt: "E",
		Content: "<script>alert(1)</script>",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Issues, 1)
	assert.Equal(t, "content", ve.Issues[0].Field)
	assert.Zero(t, repo.Writes())

	cs, err := svc.Create(ctx, ports.CaseStudyInput{Title: "T", Excerpt: "E", Content: "<p>Body</p>"})
	require.NoError(t, err)
	writes := repo.Writes()

	_, err = svc.Update(ctx, cs.ID, ports.CaseStudyPatch{Content: ptr(`<script>x()</script>  `)})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "content", ve.Issues[0].Field)
	assert.Equal(t, writes, repo.Writes())

	got, err := svc.Get(ctx, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>Body</p>", got.Content)
}

func TestMessageService_Submit(t *testing.T) {
	repo := memstore.NewMessageRepository()
	svc := NewMessageService(repo, zerolog.Nop())
	ctx := context.Background()

	msg, err := svc.Submit(ctx, ports.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.False(t, msg.Read)
	assert.Nil(t, msg.AttachmentURL)
	assert.NotZero(t, msg.ID)

	_, err = svc.Submit(ctx, ports.ContactInput{Name: "Ada", Email: "not-an-email", Message: "Hello"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Issues[0].Field)
	assert.Equal(t, 1, repo.Writes())
}

func TestMessageService_MarkAsRead_Idempotent(t *testing.T) {
	svc := NewMessageService(memstore.NewMessageRepository(), zerolog.Nop())
	ctx := context.Background()
	msg, err := svc.Submit(ctx, ports.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		read, err := svc.MarkAsRead(ctx, msg.ID)
		require.NoError(t, err)
		assert.True(t, read.Read)
	}

	_, err = svc.MarkAsRead(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingService_Upsert(t *testing.T) {
	svc := NewSettingService(memstore.NewSettingRepository(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "site_title", ptr("Old"))
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, " site_title ", ptr("New"))
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "github", nil)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "github", all[0].Key)
	assert.Nil(t, all[0].Value)
	assert.Equal(t, "New", *all[1].Value)

	_, err = svc.Upsert(ctx, " ", ptr("x"))
	assert.True(t, domain.IsValidation(err))
}
