package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-games/sitegen/internal/config"
	"github.com/wayfarer-games/sitegen/internal/content"
	"github.com/wayfarer-games/sitegen/internal/emit"
	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/git"
	"github.com/wayfarer-games/sitegen/internal/logfields"
	"github.com/wayfarer-games/sitegen/internal/manifest"
	"github.com/wayfarer-games/sitegen/internal/metrics"
)

// Options tunes a build. The zero value is usable.
type Options struct {
	Recorder metrics.Recorder
	Logger   *slog.Logger
	// Now supplies the feed timestamp used when there are no posts. Defaults to time.Now.
	Now func() time.Time
}

// Output is one file produced by a build.
type Output struct {
	Path string
	Data []byte
}

// Result summarises a completed build.
type Result struct {
	RunID    string
	Posts    []content.Post
	Written  []string
	// Stale lists page files left by earlier builds for posts no longer in the manifest.
	// They are reported, not removed.
	Stale    []string
	Duration time.Duration
	Timings  map[StageName]time.Duration
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Config      *config.Config
	Site        emit.Site
	Resolver    *content.Resolver
	Descriptors []manifest.Descriptor
	Posts       []content.Post
	Outputs     []Output
	Written     []string
	Stale       []string
	Timings     map[StageName]time.Duration

	recorder metrics.Recorder
	logger   *slog.Logger
}

func newBuildState(cfg *config.Config, opts Options, logger *slog.Logger) *BuildState {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &BuildState{
		Config: cfg,
		Site: emit.Site{
			BaseURL:     cfg.Site.BaseURL,
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			Language:    cfg.Site.Language,
			StaticPaths: cfg.Site.StaticPaths,
			Now:         now().UTC(),
		},
		Resolver: content.NewResolver(cfg.Site.BaseURL, cfg.Site.PostPath, nil),
		Timings:  make(map[StageName]time.Duration),
		recorder: recorder,
		logger:   logger,
	}
}

// Run performs a complete build described by cfg.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, errors.ConfigError("configuration is required").Build()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	logger = logger.With(logfields.RunID(runID))

	bs := newBuildState(cfg, opts, logger)
	start := time.Now()
	logger.Info("Starting site build", logfields.Path(cfg.PublicDir()), slog.String("base_url", cfg.Site.BaseURL))

	err := runStages(ctx, bs, defaultStages())
	dur := time.Since(start)
	bs.recorder.ObserveBuildDuration(dur)

	if err != nil {
		outcome := metrics.BuildOutcomeFailed
		if se, ok := err.(*StageError); ok && se.Kind == StageErrorCanceled {
			outcome = metrics.BuildOutcomeCanceled
		}
		bs.recorder.IncBuildOutcome(outcome)
		return nil, err
	}

	bs.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	bs.recorder.SetPostsEmitted(len(bs.Posts))
	logger.Info("Site build completed",
		logfields.Count(len(bs.Posts)),
		slog.Int("files", len(bs.Written)),
		logfields.DurationMS(millis(dur)))

	return &Result{
		RunID:    runID,
		Posts:    bs.Posts,
		Written:  bs.Written,
		Stale:    bs.Stale,
		Duration: dur,
		Timings:  bs.Timings,
	}, nil
}

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	for _, dir := range []string{bs.Config.PublicDir(), bs.Config.BlogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				Fatal().
				WithContext("path", dir).
				Build()
		}
	}

	if head, ok, err := git.ReadHead(bs.Config.PublicDir()); err == nil && ok {
		bs.logger.Debug("Repository HEAD", slog.String("commit", head.Commit), slog.String("branch", head.Branch))
	}

	// The report lives in the posts directory; committing it must not change the revision.
	rev, ok, err := git.LastChange(bs.Config.PostsDir(), bs.Config.ReportPath())
	switch {
	case err != nil:
		bs.logger.Warn("Could not read source revision", logfields.Error(err))
	case ok:
		bs.Site.Revision = rev.ShortCommit()
		bs.logger.Debug("Source revision", slog.String("commit", rev.Commit))
	}
	return nil
}

func stageLoadManifest(_ context.Context, bs *BuildState) error {
	descriptors, err := manifest.Load(bs.Config.ManifestPath())
	if err != nil {
		return err
	}
	bs.Descriptors = descriptors
	bs.logger.Debug("Loaded manifest", logfields.File(bs.Config.ManifestPath()), logfields.Count(len(descriptors)))
	return nil
}

func stageResolvePosts(ctx context.Context, bs *BuildState) error {
	posts := make([]content.Post, 0, len(bs.Descriptors))
	for _, d := range bs.Descriptors {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StageResolvePosts, err)
		}
		path := filepath.Join(bs.Config.PostsDir(), filepath.FromSlash(d.File))
		raw, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to read post source").
				Fatal().
				WithContext("file", d.File).
				WithContext("path", path).
				Build()
		}
		post, err := bs.Resolver.Resolve(d, string(raw))
		if err != nil {
			return errors.WrapError(err, errors.CategoryContent, "failed to render post").
				Fatal().
				WithContext("file", d.File).
				Build()
		}
		bs.logger.Debug("Resolved post", logfields.File(d.File), logfields.Slug(post.Slug))
		posts = append(posts, post)
	}
	if err := content.CheckUnique(posts, bs.Config.ReservedSlugs()...); err != nil {
		return err
	}
	bs.Posts = posts
	return nil
}

func stageSortPosts(_ context.Context, bs *BuildState) error {
	content.Sort(bs.Posts)
	return nil
}

func stageEmitAssets(_ context.Context, bs *BuildState) error {
	cfg := bs.Config
	outputs := []Output{
		{Path: cfg.RSSPath(), Data: []byte(emit.RSS(bs.Posts, bs.Site))},
		{Path: cfg.RobotsPath(), Data: []byte(emit.Robots(bs.Site))},
		{Path: cfg.SitemapPath(), Data: []byte(emit.Sitemap(bs.Posts, bs.Site))},
	}
	for _, post := range bs.Posts {
		page, err := emit.PostPage(post, bs.Site)
		if err != nil {
			return errors.WrapError(err, errors.CategoryBuild, "failed to render post page").
				Fatal().
				WithContext("slug", post.Slug).
				Build()
		}
		outputs = append(outputs, Output{Path: cfg.PostPagePath(post.Slug), Data: []byte(page)})
	}
	report, err := emit.BuildReport(bs.Posts, bs.Site)
	if err != nil {
		return errors.WrapError(err, errors.CategoryBuild, "failed to render build report").Fatal().Build()
	}
	outputs = append(outputs, Output{Path: cfg.ReportPath(), Data: []byte(report)})
	bs.Outputs = outputs
	return nil
}

func stageWriteOutputs(ctx context.Context, bs *BuildState) error {
	bs.Stale = stalePages(bs)
	for _, path := range bs.Stale {
		bs.logger.Warn("Stale post page from an earlier build", logfields.Path(path))
	}
	for _, out := range bs.Outputs {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StageWriteOutputs, err)
		}
		if err := os.MkdirAll(filepath.Dir(out.Path), 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				Fatal().
				WithContext("path", filepath.Dir(out.Path)).
				Build()
		}
		if err := os.WriteFile(out.Path, out.Data, 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
				Fatal().
				WithContext("path", out.Path).
				Build()
		}
		bs.Written = append(bs.Written, out.Path)
	}
	return nil
}

// stalePages compares the previous build report with the current posts and returns the
// page files of posts that were dropped since. A missing or unreadable report yields nil.
func stalePages(bs *BuildState) []string {
	data, err := os.ReadFile(bs.Config.ReportPath())
	if err != nil {
		return nil
	}
	var prev emit.Report
	if err := json.Unmarshal(data, &prev); err != nil {
		bs.logger.Debug("Ignoring unreadable previous build report", logfields.Error(err))
		return nil
	}

	current := make(map[string]bool, len(bs.Posts))
	for _, p := range bs.Posts {
		current[p.Slug] = true
	}
	reserved := bs.Config.ReservedSlugs()
	var stale []string
	for _, entry := range prev.Posts {
		if current[entry.Slug] || content.CheckSlug(content.Post{Slug: entry.Slug}, reserved...) != nil {
			continue
		}
		path := bs.Config.PostPagePath(entry.Slug)
		if _, err := os.Stat(path); err == nil {
			stale = append(stale, path)
		}
	}
	return stale
}
