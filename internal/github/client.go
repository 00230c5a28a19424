package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gradesync/internal/domain"

	"github.com/google/go-github/v57/github"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Client оборачивает GitHub API клиент с rate limiting и ограниченной конкурентностью.
// Реализует domain.CommitProvider.
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	pageSize    int
	maxWorkers  int
}

// NewClient создает новый GitHub клиент.
// rateLimit задает запросы в секунду, pageSize размер страницы листинга коммитов.
func NewClient(token string, rateLimit, pageSize int) *Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		pageSize:    pageSize,
		maxWorkers:  10,
	}
}

// ListCommits обходит историю коммитов репозитория, сохраняя порядок upstream
// (сначала самые свежие). Страницы после первой запрашиваются конкурентно,
// но собираются в исходном порядке. Если страница N отказала, возвращаются
// страницы 1..N-1 с флагом Degraded; ошибка возвращается только когда не
// получено ни одной страницы.
func (c *Client) ListCommits(ctx context.Context, repo domain.RepoRef) (*domain.CommitFetchResult, error) {
	firstPage, lastPage, err := c.fetchCommitPage(ctx, repo, 1)
	if err != nil {
		return nil, err
	}

	pages := make([][]*domain.Commit, lastPage)
	pages[0] = firstPage

	degraded := false
	if lastPage > 1 {
		pageErrs := make([]error, lastPage)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.maxWorkers)
		for p := 2; p <= lastPage; p++ {
			page := p
			g.Go(func() error {
				commits, _, err := c.fetchCommitPage(gctx, repo, page)
				if err != nil {
					// Частичный результат ценнее обрыва всей выборки.
					pageErrs[page-1] = err
					return nil
				}
				pages[page-1] = commits
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Обрезаем до первой отказавшей страницы, чтобы не отдать выборку с дырой.
		for i, pageErr := range pageErrs {
			if pageErr != nil {
				pages = pages[:i]
				degraded = true
				break
			}
		}
	}

	var all []*domain.Commit
	for _, page := range pages {
		all = append(all, page...)
	}

	if !degraded {
		if err := c.fillCommitStats(ctx, repo, all); err != nil {
			degraded = true
		}
	}

	return &domain.CommitFetchResult{Commits: all, Degraded: degraded}, nil
}

// fetchCommitPage запрашивает одну страницу листинга. Пустая страница не считается ошибкой.
func (c *Client) fetchCommitPage(ctx context.Context, repo domain.RepoRef, page int) ([]*domain.Commit, int, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: c.pageSize},
	}

	ghCommits, resp, err := c.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, 0, classifyError(err)
	}

	commits := make([]*domain.Commit, 0, len(ghCommits))
	for _, gc := range ghCommits {
		commits = append(commits, normalizeCommit(gc))
	}

	lastPage := resp.LastPage
	if lastPage == 0 {
		lastPage = page
	}

	return commits, lastPage, nil
}

// fillCommitStats дозапрашивает added/deleted по каждому коммиту
// (листинг GitHub их не отдает) с ограниченным фан-аутом.
func (c *Client) fillCommitStats(ctx context.Context, repo domain.RepoRef, commits []*domain.Commit) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)

	for _, commit := range commits {
		commit := commit
		g.Go(func() error {
			if err := c.rateLimiter.Wait(gctx); err != nil {
				return err
			}

			full, _, err := c.client.Repositories.GetCommit(gctx, repo.Owner, repo.Name, commit.SHA, nil)
			if err != nil {
				return classifyError(err)
			}

			if stats := full.GetStats(); stats != nil {
				commit.LinesAdded = stats.GetAdditions()
				commit.LinesDeleted = stats.GetDeletions()
			}
			return nil
		})
	}

	return g.Wait()
}

// normalizeCommit приводит коммит GitHub к доменной модели.
// Коммит без привязанного аккаунта получает автора "unknown", а не отбрасывается.
func normalizeCommit(gc *github.RepositoryCommit) *domain.Commit {
	author := gc.GetAuthor().GetLogin()
	if author == "" {
		author = domain.UnknownAuthor
	}

	return &domain.Commit{
		SHA:       gc.GetSHA(),
		Author:    author,
		AvatarURL: gc.GetAuthor().GetAvatarURL(),
		Date:      gc.GetCommit().GetAuthor().GetDate().Time,
		Message:   gc.GetCommit().GetMessage(),
	}
}

// classifyError различает rate limit и прочие отказы upstream.
func classifyError(err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		code := ghErr.Response.StatusCode
		if code == http.StatusForbidden || code == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}
