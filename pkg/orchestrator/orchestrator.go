package orchestrator

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/archbox-dev/archbox/pkg/catalog"
	"github.com/archbox-dev/archbox/pkg/download"
	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/hook"
	"github.com/archbox-dev/archbox/pkg/installer"
	"github.com/archbox-dev/archbox/pkg/logger"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/resolve"
)

// Coordinator drives one run over the catalog.
type Coordinator struct {
	cat        *catalog.Catalog
	resolver   Resolver
	dispatcher Dispatcher
	store      StateStore
	applier    PostInstallApplier
	downloader Downloader
	hooks      HookRunner
	events     Hooks
}

// New creates a coordinator. downloader and hooks may be nil, disabling
// prefetch and lifecycle hooks respectively.
func New(cat *catalog.Catalog, resolver Resolver, dispatcher Dispatcher, store StateStore,
	applier PostInstallApplier, downloader Downloader, hooks HookRunner, events Hooks,
) *Coordinator {
	return &Coordinator{
		cat:        cat,
		resolver:   resolver,
		dispatcher: dispatcher,
		store:      store,
		applier:    applier,
		downloader: downloader,
		hooks:      hooks,
		events:     events,
	}
}

// Run installs the requested packages and their dependencies. A resolution
// error aborts before any installation; a per-package failure marks that
// package and its transitive required dependents but never stops the run.
// The returned report is non-nil whenever resolution succeeded.
func (c *Coordinator) Run(ctx context.Context, requested []string, opts RunOptions) (*model.RunReport, error) {
	report := &model.RunReport{Started: time.Now()}

	c.events.emit(Event{Phase: PhaseResolve, Msg: "resolving dependencies"})
	order, err := c.resolver.Order(requested)
	if err != nil {
		return nil, err
	}

	if err := c.runHook(hook.PreRun, hook.Context{Vars: map[string]interface{}{"packages": len(order)}}); err != nil {
		return nil, err
	}

	if !opts.DryRun {
		c.prefetch(ctx, order, opts)
	}

	// bad collects every name that failed or was skipped over a failed
	// dependency; packages requiring one of them are chain-skipped.
	bad := make(map[string]bool)
	cancelled := false

	for _, name := range order {
		pkg, ok := c.cat.Get(name)
		if !ok {
			// Resolution guarantees presence; this is a programming error.
			report.Add(model.PackageResult{Name: name, State: model.StateFailed, Reason: pkgerrors.ErrUnknownPackage.Error()})
			bad[name] = true
			continue
		}

		if cancelled || ctx.Err() != nil {
			cancelled = true
			report.Add(c.skipped(pkg, model.SkipRunCancelled))
			continue
		}

		if dep, broken := c.brokenDependency(pkg, bad); broken {
			logger.Warn("skipping package, dependency failed", logrus.Fields{"package": name, "dependency": dep})
			report.Add(c.skipped(pkg, model.SkipDependencyFailed))
			bad[name] = true
			continue
		}

		if !opts.Force && c.alreadyInstalled(ctx, pkg) {
			report.Add(c.skipped(pkg, model.SkipAlreadyInstalled))
			continue
		}

		if opts.DryRun {
			report.Add(c.skipped(pkg, model.SkipDryRun))
			continue
		}

		res := c.installOne(ctx, pkg, opts)
		report.Add(res)
		if res.State == model.StateFailed {
			bad[name] = true
			if stderrors.Is(ctx.Err(), context.Canceled) {
				cancelled = true
			}
		}
	}

	c.finishHook(report)
	report.Finished = time.Now()
	c.events.emit(Event{Phase: PhaseDone})
	return report, nil
}

func (c *Coordinator) installOne(ctx context.Context, pkg *model.Package, opts RunOptions) model.PackageResult {
	start := time.Now()
	result := model.PackageResult{
		Name:    pkg.Name,
		Version: pkg.Version,
		Method:  pkg.Installation.Method,
	}

	c.events.emit(Event{Phase: PhaseInstall, Name: pkg.Name, Msg: "installing " + pkg.String()})

	if err := c.runHook(hook.PreInstall, hookContext(pkg)); err != nil {
		return c.failed(result, err, start)
	}

	installCtx := ctx
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		installCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	res, err := c.dispatcher.Install(installCtx, pkg, opts.installerOptions())
	if err != nil {
		return c.failed(result, err, start)
	}

	if res.Version != "" {
		result.Version = res.Version
	}
	result.Warnings = append(result.Warnings, res.Warnings...)

	if !pkg.PostInstall.Empty() {
		c.events.emit(Event{Phase: PhasePostInstall, Name: pkg.Name})
		applied := c.applier.Apply(ctx, pkg.Name, pkg.PostInstall)
		for _, f := range applied.Failures {
			result.Warnings = append(result.Warnings, f.String())
		}
	}

	if err := c.runHook(hook.PostInstall, hookContext(pkg)); err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}

	result.State = model.StateInstalled
	result.Duration = time.Since(start)
	c.store.RecordResult(&model.InstallRecord{
		Name:    pkg.Name,
		Version: result.Version,
		Method:  pkg.Installation.Method,
		Outcome: model.OutcomeSuccess,
	})
	logger.Info("installed", logrus.Fields{"package": pkg.Name, "version": result.Version})
	return result
}

func (c *Coordinator) failed(result model.PackageResult, err error, start time.Time) model.PackageResult {
	result.State = model.StateFailed
	result.Reason = err.Error()
	result.Duration = time.Since(start)
	c.store.RecordResult(&model.InstallRecord{
		Name:    result.Name,
		Version: result.Version,
		Method:  result.Method,
		Outcome: model.OutcomeFailure,
		Reason:  result.Reason,
	})
	logger.Error("install failed", logrus.Fields{"package": result.Name, "error": result.Reason})
	return result
}

func (c *Coordinator) skipped(pkg *model.Package, reason string) model.PackageResult {
	return model.PackageResult{
		Name:    pkg.Name,
		Version: pkg.Version,
		Method:  pkg.Installation.Method,
		State:   model.StateSkipped,
		Reason:  reason,
	}
}

// brokenDependency reports the first required catalog dependency of pkg that
// already failed this run. Optional dependencies never break their
// dependents.
func (c *Coordinator) brokenDependency(pkg *model.Package, bad map[string]bool) (string, bool) {
	for _, dep := range pkg.CatalogDependencies() {
		if dep.Optional {
			continue
		}
		if bad[dep.Name] {
			return dep.Name, true
		}
	}
	return "", false
}

// alreadyInstalled applies the skip rule: the latest record is a success at
// the catalog version and the presence probe confirms the package is still
// on the host. Unknown presence is never skippable.
func (c *Coordinator) alreadyInstalled(ctx context.Context, pkg *model.Package) bool {
	rec := c.store.Latest(pkg.Name)
	if !rec.Installed() || rec.Version != pkg.Version {
		return false
	}
	return c.dispatcher.CheckPresence(ctx, pkg) == installer.PresencePresent
}

// prefetch warms the download cache for every URL-bearing package in order.
// Failures are logged and left for the install step to surface properly.
func (c *Coordinator) prefetch(ctx context.Context, order []string, opts RunOptions) {
	if c.downloader == nil {
		return
	}
	var items []download.Item
	for _, name := range order {
		pkg, ok := c.cat.Get(name)
		if !ok || !usesDownload(pkg) {
			continue
		}
		item, err := installer.DownloadItem(pkg)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return
	}

	c.events.emit(Event{Phase: PhasePrefetch, Msg: "prefetching artifacts"})
	if _, err := c.downloader.FetchAll(ctx, items, download.Options{
		Dir:         opts.CacheDir,
		Concurrency: opts.Concurrency,
	}); err != nil {
		logger.Warn("prefetch incomplete", logrus.Fields{"error": err.Error()})
	}
}

func usesDownload(pkg *model.Package) bool {
	switch pkg.Installation.Method {
	case model.MethodBinary, model.MethodAppImage:
		return pkg.Installation.URL != ""
	case model.MethodSource:
		// Git sources are cloned at install time, not prefetched.
		return pkg.Installation.URL != "" && !isGitSource(pkg.Installation.URL)
	}
	return false
}

func isGitSource(url string) bool {
	return len(url) > 4 && (url[len(url)-4:] == ".git" || url[:4] == "git:" || url[:4] == "git+")
}

func hookContext(pkg *model.Package) hook.Context {
	return hook.Context{
		PackageName:    pkg.Name,
		PackageVersion: pkg.Version,
		Method:         string(pkg.Installation.Method),
	}
}

func (c *Coordinator) runHook(t hook.Type, ctx hook.Context) error {
	if c.hooks == nil {
		return nil
	}
	return c.hooks.Execute(t, ctx)
}

func (c *Coordinator) finishHook(report *model.RunReport) {
	err := c.runHook(hook.PostRun, hook.Context{Vars: map[string]interface{}{
		"installed": report.Installed(),
		"failed":    report.Failed(),
	}})
	if err != nil {
		logger.Warn("post-run hook failed", logrus.Fields{"error": err.Error()})
	}
}

// Remove uninstalls the named packages. Each removal is independent; a
// failure is reported and the rest proceed.
func (c *Coordinator) Remove(ctx context.Context, names []string, opts RunOptions) (*model.RunReport, error) {
	report := &model.RunReport{Started: time.Now()}

	for _, name := range names {
		start := time.Now()
		pkg, ok := c.cat.Get(name)
		if !ok {
			return nil, &resolve.UnknownPackageError{Name: name}
		}
		result := model.PackageResult{
			Name:    pkg.Name,
			Version: pkg.Version,
			Method:  pkg.Installation.Method,
		}

		if rec := c.store.Latest(name); !rec.Installed() {
			result.State = model.StateFailed
			result.Reason = pkgerrors.ErrNotInstalled.Error()
			report.Add(result)
			continue
		}

		if err := c.dispatcher.Remove(ctx, pkg, opts.installerOptions()); err != nil {
			result.State = model.StateFailed
			result.Reason = err.Error()
			result.Duration = time.Since(start)
			report.Add(result)
			continue
		}

		if !opts.DryRun {
			c.store.RecordResult(&model.InstallRecord{
				Name:    pkg.Name,
				Version: pkg.Version,
				Method:  pkg.Installation.Method,
				Outcome: model.OutcomeRemoved,
			})
		}
		result.State = model.StateRemoved
		result.Duration = time.Since(start)
		report.Add(result)
		logger.Info("removed", logrus.Fields{"package": pkg.Name})
	}

	report.Finished = time.Now()
	return report, nil
}
