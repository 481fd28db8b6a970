package cache

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/browse-hub/browse-hub/internal/logging"
	"github.com/browse-hub/browse-hub/internal/storage"
	"github.com/browse-hub/browse-hub/internal/summary"
)

// Accessor 是消费者唯一的读取入口，实现 load-or-build-or-repair 协议：
// sidecar 命中立即返回；缺失或损坏时同步重建并落盘；命中但过期时先返回
// 旧值，再在后台任务中整体重建。所有内部失败都被吸收为空结果或重建，
// 不会以错误形式返回给调用方。
type Accessor struct {
	layout  storage.Layout
	codec   SidecarCodec
	builder *Builder
	log     logrus.FieldLogger

	// launch 决定后台刷新跑在哪个执行上下文里，默认直接起 goroutine。
	launch func(func())
}

// NewAccessor 以存储布局与新鲜度阈值构造 Accessor，整个进程复用一份实例。
func NewAccessor(layout storage.Layout, ttl time.Duration, log logrus.FieldLogger) *Accessor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	a := &Accessor{
		layout: layout,
		codec:  NewSidecarCodec(ttl),
		log:    log,
		launch: func(fn func()) { go fn() },
	}
	a.builder = NewBuilder(layout, a, log)
	return a
}

// User 返回用户摘要。首次访问承担同步构建成本；此后由 sidecar 直接供给，
// 过期副本照常返回并触发一次不阻塞调用方的后台刷新。
func (a *Accessor) User(name string) *summary.UserSummary {
	// 空键不落盘也不扫描，否则会把存储根自身当成用户目录来列举。
	if name == "" {
		return &summary.UserSummary{Path: a.layout.UserDir(name), Repos: []summary.RepoSummary{}}
	}

	path := a.layout.UserSidecar(name)

	cached, err := readSidecar[summary.UserSummary](path)
	if err != nil {
		a.logMiss("user", name, err)
		return a.rebuildUser(name)
	}

	if !a.codec.Fresh(path) {
		a.scheduleRefresh("user", name, func() { a.rebuildUser(name) })
	}
	return cached
}

// Repo 返回仓库摘要，协议与 User 完全一致，仅 sidecar 位置不同。
func (a *Accessor) Repo(user, repo string) *summary.RepoSummary {
	if user == "" || repo == "" {
		return &summary.RepoSummary{Name: repo, Username: user, Solutions: []string{}}
	}

	path := a.layout.RepoSidecar(user, repo)
	key := user + "/" + repo

	cached, err := readSidecar[summary.RepoSummary](path)
	if err != nil {
		a.logMiss("repo", key, err)
		return a.rebuildRepo(user, repo)
	}

	if !a.codec.Fresh(path) {
		a.scheduleRefresh("repo", key, func() { a.rebuildRepo(user, repo) })
	}
	return cached
}

// Solution 每次实时构建：solution 层没有摘要 sidecar，成本只有一次可选的
// 元数据文件读取，无需缓存。
func (a *Accessor) Solution(user, repo, solution string) *summary.SolutionSummary {
	return a.builder.BuildSolution(user, repo, solution)
}

func (a *Accessor) rebuildUser(name string) *summary.UserSummary {
	built := a.builder.BuildUser(name)
	a.persist(built, a.layout.UserSidecar(name), "user", name)
	return built
}

func (a *Accessor) rebuildRepo(user, repo string) *summary.RepoSummary {
	built := a.builder.BuildRepo(user, repo)
	a.persist(built, a.layout.RepoSidecar(user, repo), "repo", user+"/"+repo)
	return built
}

// persist 尽力而为地落盘：写失败只记日志，本轮照常返回内存中的新摘要，
// 下一次访问会再次重建。
func (a *Accessor) persist(v any, path, level, key string) {
	if err := a.codec.Write(v, path); err != nil {
		a.log.WithFields(logging.CacheFields(level, key, "persist", "")).
			Warn(err.Error())
	}
}

// scheduleRefresh 把整套重建+落盘流程交给后台任务执行，不向触发方回传
// 任何结果。并发刷新同一键是可接受的：两次重建都源自同一份磁盘状态，
// 落盘又是原子覆盖，后写者胜出。
func (a *Accessor) scheduleRefresh(level, key string, rebuild func()) {
	id := uuid.NewString()
	a.log.WithFields(logging.CacheFields(level, key, "stale", id)).
		Debug("scheduling background refresh")

	a.launch(func() {
		rebuild()
		a.log.WithFields(logging.CacheFields(level, key, "refreshed", id)).
			Debug("background refresh done")
	})
}

func (a *Accessor) logMiss(level, key string, err error) {
	if errors.Is(err, errSidecarMissing) {
		a.log.WithFields(logging.CacheFields(level, key, "build", "")).
			Debug("sidecar absent, building")
		return
	}
	a.log.WithFields(logging.CacheFields(level, key, "repair", "")).
		Warn(err.Error())
}
